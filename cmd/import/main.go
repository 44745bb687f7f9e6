// Command import loads fixture CSV files into the database. It preserves the
// record ids carried in the files so cross-file references stay intact, and
// every insert is an upsert keyed on id, so the command can be re-run safely.
package main

import (
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/emzola/critica/config"
	"github.com/emzola/critica/internal/jsonlog"
	"github.com/emzola/critica/repository/postgres"
)

func main() {
	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	configPath := os.Getenv("CONFIG")
	if configPath == "" {
		configPath = "config.yml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	dir := flag.String("dir", "fixtures", "Directory containing the CSV fixture files")
	flag.StringVar(&cfg.Database.DSN, "db-dsn", cfg.Database.DSN, "PostgreSQL DSN")
	flag.Parse()

	db, err := postgres.OpenDBConn(cfg)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	defer db.Close()
	logger.PrintInfo("database connection pool established", nil)

	imp := &importer{db: db, dir: *dir, logger: logger}
	steps := []struct {
		file string
		fn   func(record []string) error
	}{
		{"category.csv", imp.importCategory},
		{"genre.csv", imp.importGenre},
		{"users.csv", imp.importUser},
		{"titles.csv", imp.importTitle},
		{"genre_title.csv", imp.importGenreTitle},
		{"review.csv", imp.importReview},
		{"comments.csv", imp.importComment},
	}
	for _, step := range steps {
		n, err := imp.importFile(step.file, step.fn)
		if err != nil {
			logger.PrintFatal(err, map[string]string{"file": step.file})
		}
		logger.PrintInfo("imported records", map[string]string{
			"file":  step.file,
			"count": strconv.Itoa(n),
		})
	}
	// Inserting with explicit ids bypasses the serial sequences, so bump each
	// one past the highest imported id
	for _, table := range []string{"categories", "genres", "users", "titles", "reviews", "comments"} {
		query := fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT COALESCE(MAX(id), 1) FROM %s))`, table, table)
		if _, err := db.Exec(query); err != nil {
			logger.PrintFatal(err, map[string]string{"table": table})
		}
	}
	logger.PrintInfo("import complete", nil)
}

type importer struct {
	db     *sql.DB
	dir    string
	logger *jsonlog.Logger
}

// importFile streams the records of one CSV file (skipping the header row)
// through the provided per-record import function.
func (imp *importer) importFile(name string, fn func(record []string) error) (int, error) {
	f, err := os.Open(filepath.Join(imp.dir, name))
	if err != nil {
		return 0, err
	}
	defer f.Close()
	reader := csv.NewReader(f)
	if _, err := reader.Read(); err != nil {
		return 0, err
	}
	var count int
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, err
		}
		if err := fn(record); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// category.csv: id,name,slug
func (imp *importer) importCategory(record []string) error {
	query := `
		INSERT INTO categories (id, name, slug)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING`
	_, err := imp.db.Exec(query, record[0], record[1], record[2])
	return err
}

// genre.csv: id,name,slug
func (imp *importer) importGenre(record []string) error {
	query := `
		INSERT INTO genres (id, name, slug)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING`
	_, err := imp.db.Exec(query, record[0], record[1], record[2])
	return err
}

// users.csv: id,username,email,role,bio,first_name,last_name
func (imp *importer) importUser(record []string) error {
	query := `
		INSERT INTO users (id, username, email, role, bio, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING`
	_, err := imp.db.Exec(query, record[0], record[1], record[2], record[3], record[4], record[5], record[6])
	return err
}

// titles.csv: id,name,year,category
func (imp *importer) importTitle(record []string) error {
	query := `
		INSERT INTO titles (id, name, year, category_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING`
	_, err := imp.db.Exec(query, record[0], record[1], record[2], record[3])
	return err
}

// genre_title.csv: id,title_id,genre_id
func (imp *importer) importGenreTitle(record []string) error {
	query := `
		INSERT INTO titles_genres (title_id, genre_id)
		VALUES ($1, $2)
		ON CONFLICT (title_id, genre_id) DO NOTHING`
	_, err := imp.db.Exec(query, record[1], record[2])
	return err
}

// review.csv: id,title_id,text,author,score,pub_date
func (imp *importer) importReview(record []string) error {
	createdAt, err := time.Parse(time.RFC3339, record[5])
	if err != nil {
		return fmt.Errorf("review %s: %w", record[0], err)
	}
	query := `
		INSERT INTO reviews (id, title_id, text, user_id, score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING`
	_, err = imp.db.Exec(query, record[0], record[1], record[2], record[3], record[4], createdAt)
	return err
}

// comments.csv: id,review_id,text,author,pub_date
func (imp *importer) importComment(record []string) error {
	createdAt, err := time.Parse(time.RFC3339, record[4])
	if err != nil {
		return fmt.Errorf("comment %s: %w", record[0], err)
	}
	query := `
		INSERT INTO comments (id, review_id, title_id, text, user_id, created_at)
		VALUES ($1, $2, (SELECT title_id FROM reviews WHERE id = $2), $3, $4, $5)
		ON CONFLICT (id) DO NOTHING`
	_, err = imp.db.Exec(query, record[0], record[1], record[2], record[3], createdAt)
	return err
}
