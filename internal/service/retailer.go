package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"reviewapi/internal/model"
	"reviewapi/internal/repository"
	"reviewapi/internal/storage"
)

// CreateRetailerInput creates a profile for an existing retailer user.
// An empty AuthID means the caller's own account.
type CreateRetailerInput struct {
	AuthID              string
	OwnerName           string
	OrganizationName    string
	Username            string
	PhoneNumber         string
	DateOfEstablishment string
	Country             string
	ProfilePicture      string
}

// RetailerService manages retailer profiles.
type RetailerService interface {
	Create(ctx context.Context, actor *model.Principal, in CreateRetailerInput) (*model.Retailer, error)
	FindAll(ctx context.Context) ([]model.Retailer, error)
	List(ctx context.Context, page, size int, search string) (*Page[model.Retailer], error)
	GetByID(ctx context.Context, id string) (*model.Retailer, error)
	GetByAuthID(ctx context.Context, authID string) (*model.Retailer, error)
	GetByUsername(ctx context.Context, username string) (*model.Retailer, error)
	Update(ctx context.Context, actor *model.Principal, id string, u model.RetailerUpdate) (*model.Retailer, error)
	UpdateProfilePicture(ctx context.Context, actor *model.Principal, authID string, up Upload) (*model.Retailer, error)
	// Delete removes the user behind authID; the profile and products go with it.
	Delete(ctx context.Context, actor *model.Principal, authID string) error
}

type retailerService struct {
	retailers repository.RetailerRepository
	users     repository.UserRepository
	media     *mediaStore
}

// NewRetailerService constructs a RetailerService.
func NewRetailerService(retailers repository.RetailerRepository, users repository.UserRepository, store storage.Storage, maxImageBytes int64) RetailerService {
	return &retailerService{retailers: retailers, users: users, media: newMediaStore(store, maxImageBytes)}
}

func (s *retailerService) Create(ctx context.Context, actor *model.Principal, in CreateRetailerInput) (*model.Retailer, error) {
	if actor == nil {
		return nil, unauthorized("authentication required")
	}
	if in.AuthID == "" {
		in.AuthID = actor.ID
	}
	if !actor.Owns(in.AuthID) {
		return nil, forbidden("cannot create a profile for another user")
	}
	if strings.TrimSpace(in.Username) == "" {
		return nil, invalid("username is required")
	}

	user, err := s.users.FindByID(ctx, in.AuthID)
	if err != nil {
		return nil, translate(err, "user", "")
	}
	if user.Role != model.RoleRetailer {
		return nil, invalid("user is not a retailer")
	}
	if _, err := s.retailers.FindByAuthID(ctx, in.AuthID); err == nil {
		return nil, conflict("retailer profile already exists")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	now := timeNow()
	r, err := s.retailers.Create(ctx, &model.Retailer{
		ID:                  newID(),
		AuthID:              in.AuthID,
		OwnerName:           in.OwnerName,
		OrganizationName:    in.OrganizationName,
		Username:            in.Username,
		PhoneNumber:         in.PhoneNumber,
		DateOfEstablishment: in.DateOfEstablishment,
		Country:             in.Country,
		ProfilePicture:      in.ProfilePicture,
		CreatedAt:           now,
		UpdatedAt:           now,
	})
	if err != nil {
		return nil, translate(referenced(err, "user"), "retailer", "username already in use")
	}
	return r, nil
}

func (s *retailerService) FindAll(ctx context.Context) ([]model.Retailer, error) {
	items, err := s.retailers.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Retailer{}
	}
	return items, nil
}

func (s *retailerService) List(ctx context.Context, page, size int, search string) (*Page[model.Retailer], error) {
	page, size = NormalizePage(page, size)
	res, err := s.retailers.List(ctx, repository.RetailerQuery{
		PageQuery: repository.PageQuery{Limit: size, Offset: offsetOf(page, size)},
		Search:    strings.TrimSpace(search),
	})
	if err != nil {
		return nil, err
	}
	return newPage(res.Items, page, size, res.Total), nil
}

func (s *retailerService) GetByID(ctx context.Context, id string) (*model.Retailer, error) {
	r, err := s.retailers.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "retailer", "")
	}
	return r, nil
}

func (s *retailerService) GetByAuthID(ctx context.Context, authID string) (*model.Retailer, error) {
	r, err := s.retailers.FindByAuthID(ctx, authID)
	if err != nil {
		return nil, translate(err, "retailer", "")
	}
	return r, nil
}

func (s *retailerService) GetByUsername(ctx context.Context, username string) (*model.Retailer, error) {
	r, err := s.retailers.FindByUsername(ctx, username)
	if err != nil {
		return nil, translate(err, "retailer", "")
	}
	return r, nil
}

func (s *retailerService) Update(ctx context.Context, actor *model.Principal, id string, u model.RetailerUpdate) (*model.Retailer, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(existing.AuthID) {
		return nil, forbidden("cannot modify another retailer")
	}
	if u.Username != nil && strings.TrimSpace(*u.Username) == "" {
		return nil, invalid("username cannot be empty")
	}
	r, err := s.retailers.Update(ctx, id, u)
	if err != nil {
		return nil, translate(err, "retailer", "username already in use")
	}
	return r, nil
}

func (s *retailerService) UpdateProfilePicture(ctx context.Context, actor *model.Principal, authID string, up Upload) (*model.Retailer, error) {
	existing, err := s.GetByAuthID(ctx, authID)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(existing.AuthID) {
		return nil, forbidden("cannot modify another retailer")
	}

	var updated *model.Retailer
	err = s.media.attach(ctx, KindProfilePictures, authID, existing.ProfilePicture, up, func(path string) error {
		r, err := s.retailers.UpdateProfilePicture(ctx, authID, path)
		if err != nil {
			return translate(err, "retailer", "")
		}
		updated = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *retailerService) Delete(ctx context.Context, actor *model.Principal, authID string) error {
	existing, err := s.GetByAuthID(ctx, authID)
	if err != nil {
		return err
	}
	if !actor.Owns(existing.AuthID) {
		return forbidden("cannot delete another retailer")
	}
	if err := s.users.Delete(ctx, authID); err != nil {
		return translate(err, "retailer", "")
	}
	// The row is gone; a leftover picture is only wasted space.
	_ = s.media.remove(ctx, existing.ProfilePicture)
	return nil
}
