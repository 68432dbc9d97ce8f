package category

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/veestore/storefront-backend/internal/catalog"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listCategoriesQuery  = `SELECT id, name FROM categories ORDER BY name`
	getCategoryByIDQuery = `SELECT id, name FROM categories WHERE id = $1`
	insertCategoryQuery  = `INSERT INTO categories (id, name) VALUES ($1, $2)`
	renameCategoryQuery  = `UPDATE categories SET name = $1 WHERE id = $2`
	deleteCategoryQuery  = `DELETE FROM categories WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the categories table when it does not exist yet.
func (r *PostgresRepository) EnsureSchema() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		)
	`)
	return err
}

func (r *PostgresRepository) List() ([]catalog.Category, error) {
	rows, err := r.db.Query(listCategoriesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Category, 0)
	for rows.Next() {
		var cat catalog.Category
		if err := rows.Scan(&cat.ID, &cat.Name); err != nil {
			continue
		}
		out = append(out, cat)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id string) (catalog.Category, error) {
	var cat catalog.Category
	err := r.db.QueryRow(getCategoryByIDQuery, id).Scan(&cat.ID, &cat.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return catalog.Category{}, ErrNotFound
		}
		return catalog.Category{}, err
	}
	return cat, nil
}

func (r *PostgresRepository) Create(name string) (catalog.Category, error) {
	cat := catalog.Category{ID: uuid.NewString(), Name: name}
	if _, err := r.db.Exec(insertCategoryQuery, cat.ID, cat.Name); err != nil {
		if isUniqueViolation(err) {
			return catalog.Category{}, ErrNameExists
		}
		return catalog.Category{}, err
	}
	return cat, nil
}

func (r *PostgresRepository) Rename(id string, name string) (catalog.Category, error) {
	result, err := r.db.Exec(renameCategoryQuery, name, id)
	if err != nil {
		if isUniqueViolation(err) {
			return catalog.Category{}, ErrNameExists
		}
		return catalog.Category{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return catalog.Category{}, err
	}
	if affected == 0 {
		return catalog.Category{}, ErrNotFound
	}
	return catalog.Category{ID: id, Name: name}, nil
}

func (r *PostgresRepository) Delete(id string) error {
	result, err := r.db.Exec(deleteCategoryQuery, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
