package catalog

import (
	"database/sql"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// notifyChannel carries catalog change notifications; the Listener in this
// package subscribes to it and every write ends with a pg_notify on it.
const notifyChannel = "catalog_changed"

type PostgresRepository struct {
	db *sql.DB
}

const (
	productColumns = `id, name, price, category, type, description, sizes, image, sold_out, offer, offer_discount, offer_end_time, colors, size_images, created_at, updated_at`

	listProductsQuery = `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY created_at, id
	`
	getProductByIDQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`
	listByCategoryQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE category = $1
		ORDER BY created_at, id
	`
	insertProductQuery = `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`
	updateProductQuery = `
		UPDATE products
		SET name = $1,
			price = $2,
			category = $3,
			type = $4,
			description = $5,
			sizes = $6,
			image = $7,
			sold_out = $8,
			offer = $9,
			offer_discount = $10,
			offer_end_time = $11,
			colors = $12,
			size_images = $13,
			updated_at = $14
		WHERE id = $15
	`
	deleteProductQuery       = `DELETE FROM products WHERE id = $1`
	setProductCategoryQuery  = `UPDATE products SET category = $1 WHERE id = $2`
	setProductOfferEndQuery  = `UPDATE products SET offer_end_time = $1 WHERE id = $2`
	notifyCatalogChangeQuery = `SELECT pg_notify('` + notifyChannel + `', $1)`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the products table when it does not exist yet.
func (r *PostgresRepository) EnsureSchema() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			price NUMERIC NOT NULL DEFAULT 0,
			category TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			sizes TEXT[] NOT NULL DEFAULT '{}',
			image TEXT NOT NULL DEFAULT '',
			sold_out BOOLEAN NOT NULL DEFAULT FALSE,
			offer BOOLEAN NOT NULL DEFAULT FALSE,
			offer_discount NUMERIC NOT NULL DEFAULT 0,
			offer_end_time BIGINT NOT NULL DEFAULT 0,
			colors JSONB NOT NULL DEFAULT '[]',
			size_images JSONB NOT NULL DEFAULT '[]',
			created_at TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL DEFAULT ''
		)
	`)
	return err
}

// notify fans the changed document id out to catalog listeners. A failed
// notify is logged and swallowed: the write itself already succeeded.
func (r *PostgresRepository) notify(id string) {
	if _, err := r.db.Exec(notifyCatalogChangeQuery, id); err != nil {
		log.Printf("catalog: notify failed for %s: %v", id, err)
	}
}

func (r *PostgresRepository) List() ([]Product, error) {
	rows, err := r.db.Query(listProductsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id string) (Product, error) {
	row := r.db.QueryRow(getProductByIDQuery, id)
	p, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) ListByCategory(name string) ([]Product, error) {
	rows, err := r.db.Query(listByCategoryQuery, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	colors, sizeImages, err := marshalVariants(p)
	if err != nil {
		return Product{}, err
	}
	_, err = r.db.Exec(
		insertProductQuery,
		p.ID,
		p.Name,
		p.Price,
		p.Category,
		p.Type,
		p.Description,
		pq.Array(p.Sizes),
		p.Image,
		p.SoldOut,
		p.Offer,
		p.OfferDiscount,
		p.OfferEndTime,
		colors,
		sizeImages,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return Product{}, err
	}
	r.notify(p.ID)
	return p, nil
}

func (r *PostgresRepository) Update(id string, p Product) (Product, error) {
	colors, sizeImages, err := marshalVariants(p)
	if err != nil {
		return Product{}, err
	}
	result, err := r.db.Exec(
		updateProductQuery,
		p.Name,
		p.Price,
		p.Category,
		p.Type,
		p.Description,
		pq.Array(p.Sizes),
		p.Image,
		p.SoldOut,
		p.Offer,
		p.OfferDiscount,
		p.OfferEndTime,
		colors,
		sizeImages,
		p.UpdatedAt,
		id,
	)
	if err != nil {
		return Product{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Product{}, err
	}
	if affected == 0 {
		return Product{}, ErrNotFound
	}
	r.notify(id)
	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id string) error {
	result, err := r.db.Exec(deleteProductQuery, id)
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
	r.notify(id)
	return nil
}

func (r *PostgresRepository) SetCategory(id string, category string) error {
	result, err := r.db.Exec(setProductCategoryQuery, category, id)
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
	r.notify(id)
	return nil
}

func (r *PostgresRepository) SetOfferEndTime(id string, end int64) error {
	result, err := r.db.Exec(setProductOfferEndQuery, end, id)
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
	r.notify(id)
	return nil
}

func marshalVariants(p Product) ([]byte, []byte, error) {
	colors, err := json.Marshal(renormalizeColors(p.Colors))
	if err != nil {
		return nil, nil, err
	}
	sizeImages, err := json.Marshal(renormalizeSizeImages(p.SizeImages))
	if err != nil {
		return nil, nil, err
	}
	return colors, sizeImages, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanProduct reads one row and pushes the raw variant JSON through the
// normalizer, so legacy single-image documents come out canonical.
func scanProduct(scanner rowScanner) (Product, error) {
	p := Product{}
	var (
		sizes      pq.StringArray
		colorsRaw  []byte
		sizeImgRaw []byte
		createdAt  sql.NullString
		updatedAt  sql.NullString
	)
	if err := scanner.Scan(
		&p.ID,
		&p.Name,
		&p.Price,
		&p.Category,
		&p.Type,
		&p.Description,
		&sizes,
		&p.Image,
		&p.SoldOut,
		&p.Offer,
		&p.OfferDiscount,
		&p.OfferEndTime,
		&colorsRaw,
		&sizeImgRaw,
		&createdAt,
		&updatedAt,
	); err != nil {
		return Product{}, err
	}

	p.Sizes = []string(sizes)
	if p.Sizes == nil {
		p.Sizes = []string{}
	}

	var rawColors []RawVariant
	if len(colorsRaw) > 0 {
		if err := json.Unmarshal(colorsRaw, &rawColors); err != nil {
			rawColors = nil
		}
	}
	p.Colors = NormalizeColors(rawColors)

	var rawSizeImages []RawVariant
	if len(sizeImgRaw) > 0 {
		if err := json.Unmarshal(sizeImgRaw, &rawSizeImages); err != nil {
			rawSizeImages = nil
		}
	}
	p.SizeImages = NormalizeSizeImages(rawSizeImages)

	if createdAt.Valid {
		p.CreatedAt = createdAt.String
	}
	if updatedAt.Valid {
		p.UpdatedAt = updatedAt.String
	}
	return p, nil
}
