package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/emzola/critica/data"
)

type titles interface {
	CreateTitle(title *data.Title) error
	GetTitle(titleID int64) (*data.Title, error)
	UpdateTitle(title *data.Title) error
	DeleteTitle(titleID int64) error
	GetAllTitles(name, categorySlug, genreSlug string, year int, filters data.Filters) ([]*data.Title, data.Metadata, error)
}

// CreateTitle creates a title record together with its genre links. The
// category and genres must already be resolved to IDs on the title struct.
func (r *repository) CreateTitle(title *data.Title) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	query := `
		INSERT INTO titles (name, year, description, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, version`
	var categoryID interface{}
	if title.Category != nil {
		categoryID = title.Category.ID
	}
	args := []interface{}{title.Name, title.Year, title.Description, categoryID}
	err = tx.QueryRowContext(ctx, query, args...).Scan(&title.ID, &title.Version)
	if err != nil {
		return err
	}
	for _, genre := range title.Genres {
		_, err = tx.ExecContext(ctx, `INSERT INTO titles_genres (title_id, genre_id) VALUES ($1, $2)`, title.ID, genre.ID)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetTitle retrieves a title record by its ID, with the category embedded and
// the rating annotation computed over the title's reviews.
func (r *repository) GetTitle(titleID int64) (*data.Title, error) {
	if titleID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT titles.id, titles.name, titles.year, titles.description, titles.version,
			categories.id, categories.name, categories.slug,
			(SELECT AVG(score) FROM reviews WHERE reviews.title_id = titles.id)
		FROM titles
		LEFT JOIN categories ON titles.category_id = categories.id
		WHERE titles.id = $1`
	var title data.Title
	var categoryID sql.NullInt64
	var categoryName, categorySlug sql.NullString
	var rating sql.NullFloat64
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, titleID).Scan(
		&title.ID,
		&title.Name,
		&title.Year,
		&title.Description,
		&title.Version,
		&categoryID,
		&categoryName,
		&categorySlug,
		&rating,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if categoryID.Valid {
		title.Category = &data.Category{
			ID:   categoryID.Int64,
			Name: categoryName.String,
			Slug: categorySlug.String,
		}
	}
	if rating.Valid {
		title.Rating = &rating.Float64
	}
	return &title, nil
}

// UpdateTitle updates a title record. When the genre set changed, the links
// are replaced inside the same transaction.
func (r *repository) UpdateTitle(title *data.Title) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	query := `
		UPDATE titles
		SET name = $1, year = $2, description = $3, category_id = $4, version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version`
	var categoryID interface{}
	if title.Category != nil {
		categoryID = title.Category.ID
	}
	args := []interface{}{title.Name, title.Year, title.Description, categoryID, title.ID, title.Version}
	err = tx.QueryRowContext(ctx, query, args...).Scan(&title.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM titles_genres WHERE title_id = $1`, title.ID)
	if err != nil {
		return err
	}
	for _, genre := range title.Genres {
		_, err = tx.ExecContext(ctx, `INSERT INTO titles_genres (title_id, genre_id) VALUES ($1, $2)`, title.ID, genre.ID)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// DeleteTitle deletes a title record. Reviews and comments follow via the
// cascade constraints.
func (r *repository) DeleteTitle(titleID int64) error {
	if titleID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM titles
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, titleID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// GetAllTitles retrieves a paginated list of title records annotated with
// their average review score. Records can be filtered by a case-insensitive
// name substring, category slug, genre slug and exact year.
func (r *repository) GetAllTitles(name, categorySlug, genreSlug string, year int, filters data.Filters) ([]*data.Title, data.Metadata, error) {
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), titles.id, titles.name, titles.year, titles.description, titles.version,
			categories.id, categories.name, categories.slug,
			(SELECT AVG(score) FROM reviews WHERE reviews.title_id = titles.id) AS rating
		FROM titles
		LEFT JOIN categories ON titles.category_id = categories.id
		WHERE (LOWER(titles.name) LIKE '%%' || LOWER($1) || '%%' OR $1 = '')
		AND (categories.slug = $2 OR $2 = '')
		AND ($3 = '' OR EXISTS (
			SELECT 1 FROM titles_genres
			INNER JOIN genres ON genres.id = titles_genres.genre_id
			WHERE titles_genres.title_id = titles.id AND genres.slug = $3))
		AND ($4 = 0 OR titles.year = $4)
		ORDER BY %s %s, titles.id ASC
		LIMIT $5 OFFSET $6`,
		sortColumn(filters, titleSortColumns), filters.SortDirection())
	args := []interface{}{name, categorySlug, genreSlug, year, filters.Limit(), filters.Offset()}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	defer rows.Close()
	totalRecords := 0
	titles := []*data.Title{}
	for rows.Next() {
		var title data.Title
		var categoryID sql.NullInt64
		var categoryName, catSlug sql.NullString
		var rating sql.NullFloat64
		err := rows.Scan(
			&totalRecords,
			&title.ID,
			&title.Name,
			&title.Year,
			&title.Description,
			&title.Version,
			&categoryID,
			&categoryName,
			&catSlug,
			&rating,
		)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		if categoryID.Valid {
			title.Category = &data.Category{
				ID:   categoryID.Int64,
				Name: categoryName.String,
				Slug: catSlug.String,
			}
		}
		if rating.Valid {
			title.Rating = &rating.Float64
		}
		titles = append(titles, &title)
	}
	if err = rows.Err(); err != nil {
		return nil, data.Metadata{}, err
	}
	metadata := data.CalculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return titles, metadata, nil
}
