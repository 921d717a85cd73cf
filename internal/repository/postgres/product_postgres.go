package postgres

import (
	"context"
	"database/sql"
	"errors"

	"reviewapi/internal/model"
	"reviewapi/internal/repository"
)

const productColumns = `id, title, description, image, retailer_auth_id, retailer_name, retailer_icon, target_sentiment, liked_by, no_of_likes, created_at, updated_at`

const productFilter = `WHERE ($1::text = '' OR title ILIKE $1) AND ($2::text = '' OR retailer_auth_id::text = $2)`

// ProductPostgres is a PostgreSQL implementation of repository.ProductRepository.
type ProductPostgres struct {
	db *sql.DB
}

// NewProductPostgres creates a new ProductPostgres repository.
func NewProductPostgres(db *sql.DB) *ProductPostgres {
	return &ProductPostgres{db: db}
}

var _ repository.ProductRepository = (*ProductPostgres)(nil)

func scanProduct(rs rowScanner) (*model.Product, error) {
	var p model.Product
	if err := rs.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Image,
		&p.RetailerAuthID,
		&p.RetailerName,
		&p.RetailerIcon,
		textArray{&p.TargetSentiment},
		textArray{&p.LikedBy},
		&p.NoOfLikes,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a product with an empty like set.
func (r *ProductPostgres) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	const q = `
		INSERT INTO products (id, title, description, image, retailer_auth_id, retailer_name, retailer_icon, target_sentiment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + productColumns
	out, err := scanProduct(r.db.QueryRowContext(ctx, q,
		p.ID,
		p.Title,
		p.Description,
		p.Image,
		p.RetailerAuthID,
		p.RetailerName,
		p.RetailerIcon,
		arrayArg(p.TargetSentiment),
		p.CreatedAt,
		p.UpdatedAt,
	))
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// FindByID fetches a single product by its ID.
func (r *ProductPostgres) FindByID(ctx context.Context, id string) (*model.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return scanProduct(r.db.QueryRowContext(ctx, q, id))
}

// List returns products newest first using LIMIT/OFFSET and the filtered total.
func (r *ProductPostgres) List(ctx context.Context, pq repository.ProductQuery) (*repository.PageResult[model.Product], error) {
	pattern := containsPattern(pq.Search)

	const qCount = `SELECT COUNT(*) FROM products ` + productFilter
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, pattern, pq.RetailerAuthID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + productColumns + `
		FROM products ` + productFilter + `
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, qList, pattern, pq.RetailerAuthID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	items, err := collect(rows, scanProduct)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Product]{Items: items, Total: total}, nil
}

// Update applies the non-nil fields of u.
func (r *ProductPostgres) Update(ctx context.Context, id string, u model.ProductUpdate) (*model.Product, error) {
	const q = `
		UPDATE products SET
			title            = COALESCE($2, title),
			description      = COALESCE($3, description),
			retailer_name    = COALESCE($4, retailer_name),
			retailer_icon    = COALESCE($5, retailer_icon),
			target_sentiment = COALESCE($6::text[], target_sentiment),
			updated_at       = now()
		WHERE id = $1
		RETURNING ` + productColumns
	return scanProduct(r.db.QueryRowContext(ctx, q,
		id,
		u.Title,
		u.Description,
		u.RetailerName,
		u.RetailerIcon,
		optionalArrayArg(u.TargetSentiment),
	))
}

// UpdateImage stores the public image path of a product.
func (r *ProductPostgres) UpdateImage(ctx context.Context, id, path string) (*model.Product, error) {
	const q = `
		UPDATE products SET image = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + productColumns
	return scanProduct(r.db.QueryRowContext(ctx, q, id, path))
}

// Delete removes a product by ID.
func (r *ProductPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM products WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Like appends userID to liked_by and recounts in one statement; the WHERE clause
// makes concurrent double-likes a no-op.
func (r *ProductPostgres) Like(ctx context.Context, id, userID string) (*model.Product, bool, error) {
	const q = `
		UPDATE products SET
			liked_by    = array_append(liked_by, $2::text),
			no_of_likes = cardinality(liked_by) + 1,
			updated_at  = now()
		WHERE id = $1 AND NOT ($2::text = ANY(liked_by))
		RETURNING ` + productColumns
	return r.applyLike(ctx, q, id, userID)
}

// Unlike removes userID from liked_by and recounts in one statement.
func (r *ProductPostgres) Unlike(ctx context.Context, id, userID string) (*model.Product, bool, error) {
	const q = `
		UPDATE products SET
			liked_by    = array_remove(liked_by, $2::text),
			no_of_likes = cardinality(array_remove(liked_by, $2::text)),
			updated_at  = now()
		WHERE id = $1 AND $2::text = ANY(liked_by)
		RETURNING ` + productColumns
	return r.applyLike(ctx, q, id, userID)
}

// applyLike runs a conditional like/unlike update. When the condition filtered the row out,
// the current state is returned so callers can tell "unchanged" from "missing".
func (r *ProductPostgres) applyLike(ctx context.Context, q, id, userID string) (*model.Product, bool, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, q, id, userID))
	if err == nil {
		return p, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, err
	}
	p, err = r.FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return p, false, nil
}

// IsLikedBy reports whether userID is in the product's like set.
func (r *ProductPostgres) IsLikedBy(ctx context.Context, id, userID string) (bool, error) {
	const q = `SELECT $2::text = ANY(liked_by) FROM products WHERE id = $1`
	var liked bool
	if err := r.db.QueryRowContext(ctx, q, id, userID).Scan(&liked); err != nil {
		return false, err
	}
	return liked, nil
}
