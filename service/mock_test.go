package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"sort"
	"time"

	"github.com/emzola/critica/data"
	"github.com/emzola/critica/repository"
)

// mockRepo is an in-memory implementation of repository.Repository used to
// exercise the service layer without a database.
type mockRepo struct {
	categories  map[string]*data.Category
	genres      map[string]*data.Genre
	titles      map[int64]*data.Title
	titleGenres map[int64][]data.Genre
	reviews     map[int64]*data.Review
	comments    map[int64]*data.Comment
	users       map[int64]*data.User
	tokens      []*data.Token
	nextID      int64

	// When set, ReviewExistsForUser fails with this error.
	reviewExistsErr error
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		categories:  make(map[string]*data.Category),
		genres:      make(map[string]*data.Genre),
		titles:      make(map[int64]*data.Title),
		titleGenres: make(map[int64][]data.Genre),
		reviews:     make(map[int64]*data.Review),
		comments:    make(map[int64]*data.Comment),
		users:       make(map[int64]*data.User),
	}
}

func (m *mockRepo) nextIDValue() int64 {
	m.nextID++
	return m.nextID
}

func (m *mockRepo) CreateCategory(category *data.Category) error {
	if _, exists := m.categories[category.Slug]; exists {
		return repository.ErrDuplicateRecord
	}
	category.ID = m.nextIDValue()
	m.categories[category.Slug] = category
	return nil
}

func (m *mockRepo) GetCategoryBySlug(slug string) (*data.Category, error) {
	category, ok := m.categories[slug]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return category, nil
}

func (m *mockRepo) GetAllCategories(search string, filters data.Filters) ([]*data.Category, data.Metadata, error) {
	var categories []*data.Category
	for _, c := range m.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, data.CalculateMetadata(len(categories), filters.Page, filters.PageSize), nil
}

func (m *mockRepo) DeleteCategory(slug string) error {
	if _, ok := m.categories[slug]; !ok {
		return repository.ErrRecordNotFound
	}
	delete(m.categories, slug)
	return nil
}

func (m *mockRepo) CreateGenre(genre *data.Genre) error {
	if _, exists := m.genres[genre.Slug]; exists {
		return repository.ErrDuplicateRecord
	}
	genre.ID = m.nextIDValue()
	m.genres[genre.Slug] = genre
	return nil
}

func (m *mockRepo) GetGenreBySlug(slug string) (*data.Genre, error) {
	genre, ok := m.genres[slug]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return genre, nil
}

func (m *mockRepo) GetAllGenres(search string, filters data.Filters) ([]*data.Genre, data.Metadata, error) {
	var genres []*data.Genre
	for _, g := range m.genres {
		genres = append(genres, g)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].ID < genres[j].ID })
	return genres, data.CalculateMetadata(len(genres), filters.Page, filters.PageSize), nil
}

func (m *mockRepo) GetAllGenresForTitle(titleID int64) ([]data.Genre, error) {
	return m.titleGenres[titleID], nil
}

func (m *mockRepo) DeleteGenre(slug string) error {
	if _, ok := m.genres[slug]; !ok {
		return repository.ErrRecordNotFound
	}
	delete(m.genres, slug)
	return nil
}

func (m *mockRepo) CreateTitle(title *data.Title) error {
	title.ID = m.nextIDValue()
	title.Version = 1
	m.titles[title.ID] = title
	m.titleGenres[title.ID] = title.Genres
	return nil
}

func (m *mockRepo) GetTitle(titleID int64) (*data.Title, error) {
	title, ok := m.titles[titleID]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	copied := *title
	return &copied, nil
}

func (m *mockRepo) UpdateTitle(title *data.Title) error {
	existing, ok := m.titles[title.ID]
	if !ok || existing.Version != title.Version {
		return repository.ErrEditConflict
	}
	title.Version++
	m.titles[title.ID] = title
	m.titleGenres[title.ID] = title.Genres
	return nil
}

func (m *mockRepo) DeleteTitle(titleID int64) error {
	if _, ok := m.titles[titleID]; !ok {
		return repository.ErrRecordNotFound
	}
	delete(m.titles, titleID)
	delete(m.titleGenres, titleID)
	return nil
}

func (m *mockRepo) GetAllTitles(name, categorySlug, genreSlug string, year int, filters data.Filters) ([]*data.Title, data.Metadata, error) {
	var titles []*data.Title
	for _, t := range m.titles {
		titles = append(titles, t)
	}
	sort.Slice(titles, func(i, j int) bool { return titles[i].ID < titles[j].ID })
	return titles, data.CalculateMetadata(len(titles), filters.Page, filters.PageSize), nil
}

func (m *mockRepo) CreateReview(review *data.Review) error {
	for _, r := range m.reviews {
		if r.TitleID == review.TitleID && r.AuthorID == review.AuthorID {
			return repository.ErrDuplicateRecord
		}
	}
	review.ID = m.nextIDValue()
	review.CreatedAt = time.Now()
	review.Version = 1
	m.reviews[review.ID] = review
	return nil
}

func (m *mockRepo) GetReview(titleID, reviewID int64) (*data.Review, error) {
	review, ok := m.reviews[reviewID]
	if !ok || review.TitleID != titleID {
		return nil, repository.ErrRecordNotFound
	}
	copied := *review
	return &copied, nil
}

func (m *mockRepo) UpdateReview(review *data.Review) error {
	existing, ok := m.reviews[review.ID]
	if !ok || existing.Version != review.Version {
		return repository.ErrEditConflict
	}
	review.Version++
	m.reviews[review.ID] = review
	return nil
}

func (m *mockRepo) DeleteReview(titleID, reviewID int64) error {
	review, ok := m.reviews[reviewID]
	if !ok || review.TitleID != titleID {
		return repository.ErrRecordNotFound
	}
	delete(m.reviews, reviewID)
	return nil
}

func (m *mockRepo) ReviewExistsForUser(userID, titleID int64) (bool, error) {
	if m.reviewExistsErr != nil {
		return false, m.reviewExistsErr
	}
	for _, r := range m.reviews {
		if r.TitleID == titleID && r.AuthorID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepo) GetAllReviews(titleID int64, filters data.Filters) ([]*data.Review, data.Metadata, error) {
	var reviews []*data.Review
	for _, r := range m.reviews {
		if r.TitleID == titleID {
			reviews = append(reviews, r)
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].ID < reviews[j].ID })
	return reviews, data.CalculateMetadata(len(reviews), filters.Page, filters.PageSize), nil
}

func (m *mockRepo) CreateComment(comment *data.Comment) error {
	comment.ID = m.nextIDValue()
	comment.CreatedAt = time.Now()
	comment.Version = 1
	m.comments[comment.ID] = comment
	return nil
}

func (m *mockRepo) GetComment(reviewID, commentID int64) (*data.Comment, error) {
	comment, ok := m.comments[commentID]
	if !ok || comment.ReviewID != reviewID {
		return nil, repository.ErrRecordNotFound
	}
	copied := *comment
	return &copied, nil
}

func (m *mockRepo) UpdateComment(comment *data.Comment) error {
	existing, ok := m.comments[comment.ID]
	if !ok || existing.Version != comment.Version {
		return repository.ErrEditConflict
	}
	comment.Version++
	m.comments[comment.ID] = comment
	return nil
}

func (m *mockRepo) DeleteComment(reviewID, commentID int64) error {
	comment, ok := m.comments[commentID]
	if !ok || comment.ReviewID != reviewID {
		return repository.ErrRecordNotFound
	}
	delete(m.comments, commentID)
	return nil
}

func (m *mockRepo) GetAllComments(reviewID int64, filters data.Filters) ([]*data.Comment, data.Metadata, error) {
	var comments []*data.Comment
	for _, c := range m.comments {
		if c.ReviewID == reviewID {
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, data.CalculateMetadata(len(comments), filters.Page, filters.PageSize), nil
}

func (m *mockRepo) CreateUser(user *data.User) error {
	for _, u := range m.users {
		if u.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.ID = m.nextIDValue()
	user.CreatedAt = time.Now()
	user.Version = 1
	m.users[user.ID] = user
	return nil
}

func (m *mockRepo) GetUserByID(userID int64) (*data.User, error) {
	user, ok := m.users[userID]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return user, nil
}

func (m *mockRepo) GetUserByUsername(username string) (*data.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repository.ErrRecordNotFound
}

func (m *mockRepo) GetUserByEmail(email string) (*data.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrRecordNotFound
}

func (m *mockRepo) UpdateUser(user *data.User) error {
	existing, ok := m.users[user.ID]
	if !ok || existing.Version != user.Version {
		return repository.ErrEditConflict
	}
	user.Version++
	m.users[user.ID] = user
	return nil
}

func (m *mockRepo) DeleteUser(username string) error {
	for id, u := range m.users {
		if u.Username == username {
			delete(m.users, id)
			return nil
		}
	}
	return repository.ErrRecordNotFound
}

func (m *mockRepo) GetAllUsers(search string, filters data.Filters) ([]*data.User, data.Metadata, error) {
	var users []*data.User
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, data.CalculateMetadata(len(users), filters.Page, filters.PageSize), nil
}

func (m *mockRepo) GetUserForToken(tokenScope, tokenPlaintext string) (*data.User, error) {
	hash := sha256.Sum256([]byte(tokenPlaintext))
	for _, t := range m.tokens {
		if string(t.Hash) == string(hash[:]) && t.Scope == tokenScope && t.Expiry.After(time.Now()) {
			return m.GetUserByID(t.UserID)
		}
	}
	return nil, repository.ErrRecordNotFound
}

func (m *mockRepo) CreateNewToken(userID int64, ttl time.Duration, scope string) (*data.Token, error) {
	randomBytes := make([]byte, 16)
	if _, err := rand.Read(randomBytes); err != nil {
		return nil, err
	}
	token := &data.Token{
		Plaintext: base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes),
		UserID:    userID,
		Expiry:    time.Now().Add(ttl),
		Scope:     scope,
	}
	hash := sha256.Sum256([]byte(token.Plaintext))
	token.Hash = hash[:]
	m.tokens = append(m.tokens, token)
	return token, nil
}

func (m *mockRepo) DeleteAllTokensForUser(scope string, userID int64) error {
	kept := m.tokens[:0]
	for _, t := range m.tokens {
		if t.UserID != userID || t.Scope != scope {
			kept = append(kept, t)
		}
	}
	m.tokens = kept
	return nil
}
