package postgres

import (
	"context"
	"database/sql"

	"reviewapi/internal/model"
	"reviewapi/internal/repository"
)

const retailerColumns = `id, auth_id, owner_name, organization_name, username, phone_number, date_of_establishment, country, profile_picture, created_at, updated_at`

const retailerFilter = `WHERE ($1::text = '' OR username ILIKE $1 OR organization_name ILIKE $1)`

// RetailerPostgres is a PostgreSQL implementation of repository.RetailerRepository.
type RetailerPostgres struct {
	db *sql.DB
}

// NewRetailerPostgres creates a new RetailerPostgres repository.
func NewRetailerPostgres(db *sql.DB) *RetailerPostgres {
	return &RetailerPostgres{db: db}
}

var _ repository.RetailerRepository = (*RetailerPostgres)(nil)

func scanRetailer(rs rowScanner) (*model.Retailer, error) {
	var rt model.Retailer
	if err := rs.Scan(
		&rt.ID,
		&rt.AuthID,
		&rt.OwnerName,
		&rt.OrganizationName,
		&rt.Username,
		&rt.PhoneNumber,
		&rt.DateOfEstablishment,
		&rt.Country,
		&rt.ProfilePicture,
		&rt.CreatedAt,
		&rt.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &rt, nil
}

// Create inserts a retailer profile.
func (r *RetailerPostgres) Create(ctx context.Context, rt *model.Retailer) (*model.Retailer, error) {
	const q = `
		INSERT INTO retailers (id, auth_id, owner_name, organization_name, username, phone_number, date_of_establishment, country, profile_picture, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + retailerColumns
	out, err := scanRetailer(r.db.QueryRowContext(ctx, q,
		rt.ID,
		rt.AuthID,
		rt.OwnerName,
		rt.OrganizationName,
		rt.Username,
		rt.PhoneNumber,
		rt.DateOfEstablishment,
		rt.Country,
		rt.ProfilePicture,
		rt.CreatedAt,
		rt.UpdatedAt,
	))
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// FindAll returns every retailer, oldest first.
func (r *RetailerPostgres) FindAll(ctx context.Context) ([]model.Retailer, error) {
	const q = `SELECT ` + retailerColumns + ` FROM retailers ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanRetailer)
}

// List returns a page of retailers and the filtered total.
func (r *RetailerPostgres) List(ctx context.Context, rq repository.RetailerQuery) (*repository.PageResult[model.Retailer], error) {
	pattern := containsPattern(rq.Search)

	const qCount = `SELECT COUNT(*) FROM retailers ` + retailerFilter
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, pattern).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + retailerColumns + `
		FROM retailers ` + retailerFilter + `
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, qList, pattern, rq.Limit, rq.Offset)
	if err != nil {
		return nil, err
	}
	items, err := collect(rows, scanRetailer)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Retailer]{Items: items, Total: total}, nil
}

// FindByID fetches a retailer by profile ID.
func (r *RetailerPostgres) FindByID(ctx context.Context, id string) (*model.Retailer, error) {
	const q = `SELECT ` + retailerColumns + ` FROM retailers WHERE id = $1`
	return scanRetailer(r.db.QueryRowContext(ctx, q, id))
}

// FindByAuthID fetches a retailer by the owning user's ID.
func (r *RetailerPostgres) FindByAuthID(ctx context.Context, authID string) (*model.Retailer, error) {
	const q = `SELECT ` + retailerColumns + ` FROM retailers WHERE auth_id = $1`
	return scanRetailer(r.db.QueryRowContext(ctx, q, authID))
}

// FindByUsername fetches a retailer by username.
func (r *RetailerPostgres) FindByUsername(ctx context.Context, username string) (*model.Retailer, error) {
	const q = `SELECT ` + retailerColumns + ` FROM retailers WHERE username = $1`
	return scanRetailer(r.db.QueryRowContext(ctx, q, username))
}

// Update applies the non-nil fields of u.
func (r *RetailerPostgres) Update(ctx context.Context, id string, u model.RetailerUpdate) (*model.Retailer, error) {
	const q = `
		UPDATE retailers SET
			owner_name            = COALESCE($2, owner_name),
			organization_name     = COALESCE($3, organization_name),
			username              = COALESCE($4, username),
			phone_number          = COALESCE($5, phone_number),
			date_of_establishment = COALESCE($6, date_of_establishment),
			country               = COALESCE($7, country),
			profile_picture       = COALESCE($8, profile_picture),
			updated_at            = now()
		WHERE id = $1
		RETURNING ` + retailerColumns
	out, err := scanRetailer(r.db.QueryRowContext(ctx, q,
		id,
		u.OwnerName,
		u.OrganizationName,
		u.Username,
		u.PhoneNumber,
		u.DateOfEstablishment,
		u.Country,
		u.ProfilePicture,
	))
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// UpdateProfilePicture stores the public image path on the retailer owned by authID.
func (r *RetailerPostgres) UpdateProfilePicture(ctx context.Context, authID, path string) (*model.Retailer, error) {
	const q = `
		UPDATE retailers SET profile_picture = $2, updated_at = now()
		WHERE auth_id = $1
		RETURNING ` + retailerColumns
	return scanRetailer(r.db.QueryRowContext(ctx, q, authID, path))
}
