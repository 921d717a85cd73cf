package postgres

import (
	"context"
	"database/sql"

	"reviewapi/internal/model"
	"reviewapi/internal/repository"
)

const consumerColumns = `id, auth_id, full_name, username, phone_number, dob, gender, country, profile_picture, created_at, updated_at`

const consumerFilter = `WHERE ($1::text = '' OR username ILIKE $1 OR full_name ILIKE $1)`

// ConsumerPostgres is a PostgreSQL implementation of repository.ConsumerRepository.
type ConsumerPostgres struct {
	db *sql.DB
}

// NewConsumerPostgres creates a new ConsumerPostgres repository.
func NewConsumerPostgres(db *sql.DB) *ConsumerPostgres {
	return &ConsumerPostgres{db: db}
}

var _ repository.ConsumerRepository = (*ConsumerPostgres)(nil)

func scanConsumer(rs rowScanner) (*model.Consumer, error) {
	var c model.Consumer
	if err := rs.Scan(
		&c.ID,
		&c.AuthID,
		&c.FullName,
		&c.Username,
		&c.PhoneNumber,
		&c.DOB,
		&c.Gender,
		&c.Country,
		&c.ProfilePicture,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a consumer profile; a taken username or auth id yields repository.ErrDuplicate.
func (r *ConsumerPostgres) Create(ctx context.Context, c *model.Consumer) (*model.Consumer, error) {
	const q = `
		INSERT INTO consumers (id, auth_id, full_name, username, phone_number, dob, gender, country, profile_picture, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + consumerColumns
	out, err := scanConsumer(r.db.QueryRowContext(ctx, q,
		c.ID,
		c.AuthID,
		c.FullName,
		c.Username,
		c.PhoneNumber,
		c.DOB,
		c.Gender,
		c.Country,
		c.ProfilePicture,
		c.CreatedAt,
		c.UpdatedAt,
	))
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// FindAll returns every consumer, oldest first.
func (r *ConsumerPostgres) FindAll(ctx context.Context) ([]model.Consumer, error) {
	const q = `SELECT ` + consumerColumns + ` FROM consumers ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanConsumer)
}

// List returns a page of consumers and the filtered total.
func (r *ConsumerPostgres) List(ctx context.Context, cq repository.ConsumerQuery) (*repository.PageResult[model.Consumer], error) {
	pattern := containsPattern(cq.Search)

	const qCount = `SELECT COUNT(*) FROM consumers ` + consumerFilter
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, pattern).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + consumerColumns + `
		FROM consumers ` + consumerFilter + `
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, qList, pattern, cq.Limit, cq.Offset)
	if err != nil {
		return nil, err
	}
	items, err := collect(rows, scanConsumer)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Consumer]{Items: items, Total: total}, nil
}

// FindByID fetches a consumer by profile ID.
func (r *ConsumerPostgres) FindByID(ctx context.Context, id string) (*model.Consumer, error) {
	const q = `SELECT ` + consumerColumns + ` FROM consumers WHERE id = $1`
	return scanConsumer(r.db.QueryRowContext(ctx, q, id))
}

// FindByAuthID fetches a consumer by the owning user's ID.
func (r *ConsumerPostgres) FindByAuthID(ctx context.Context, authID string) (*model.Consumer, error) {
	const q = `SELECT ` + consumerColumns + ` FROM consumers WHERE auth_id = $1`
	return scanConsumer(r.db.QueryRowContext(ctx, q, authID))
}

// FindByUsername fetches a consumer by username.
func (r *ConsumerPostgres) FindByUsername(ctx context.Context, username string) (*model.Consumer, error) {
	const q = `SELECT ` + consumerColumns + ` FROM consumers WHERE username = $1`
	return scanConsumer(r.db.QueryRowContext(ctx, q, username))
}

// Update applies the non-nil fields of u.
func (r *ConsumerPostgres) Update(ctx context.Context, id string, u model.ConsumerUpdate) (*model.Consumer, error) {
	const q = `
		UPDATE consumers SET
			full_name       = COALESCE($2, full_name),
			username        = COALESCE($3, username),
			phone_number    = COALESCE($4, phone_number),
			dob             = COALESCE($5, dob),
			gender          = COALESCE($6, gender),
			country         = COALESCE($7, country),
			profile_picture = COALESCE($8, profile_picture),
			updated_at      = now()
		WHERE id = $1
		RETURNING ` + consumerColumns
	out, err := scanConsumer(r.db.QueryRowContext(ctx, q,
		id,
		u.FullName,
		u.Username,
		u.PhoneNumber,
		u.DOB,
		u.Gender,
		u.Country,
		u.ProfilePicture,
	))
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// UpdateProfilePicture stores the public image path on the consumer owned by authID.
func (r *ConsumerPostgres) UpdateProfilePicture(ctx context.Context, authID, path string) (*model.Consumer, error) {
	const q = `
		UPDATE consumers SET profile_picture = $2, updated_at = now()
		WHERE auth_id = $1
		RETURNING ` + consumerColumns
	return scanConsumer(r.db.QueryRowContext(ctx, q, authID, path))
}
