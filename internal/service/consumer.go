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

// CreateConsumerInput creates a profile for an existing consumer user.
// An empty AuthID means the caller's own account.
type CreateConsumerInput struct {
	AuthID         string
	FullName       string
	Username       string
	PhoneNumber    string
	DOB            string
	Gender         string
	Country        string
	ProfilePicture string
}

// ConsumerService manages consumer profiles.
type ConsumerService interface {
	Create(ctx context.Context, actor *model.Principal, in CreateConsumerInput) (*model.Consumer, error)
	FindAll(ctx context.Context) ([]model.Consumer, error)
	List(ctx context.Context, page, size int, search string) (*Page[model.Consumer], error)
	GetByID(ctx context.Context, id string) (*model.Consumer, error)
	GetByAuthID(ctx context.Context, authID string) (*model.Consumer, error)
	GetByUsername(ctx context.Context, username string) (*model.Consumer, error)
	Update(ctx context.Context, actor *model.Principal, id string, u model.ConsumerUpdate) (*model.Consumer, error)
	UpdateProfilePicture(ctx context.Context, actor *model.Principal, authID string, up Upload) (*model.Consumer, error)
	// Delete removes the user behind authID; the profile and collection go with it.
	Delete(ctx context.Context, actor *model.Principal, authID string) error
}

type consumerService struct {
	consumers repository.ConsumerRepository
	users     repository.UserRepository
	media     *mediaStore
}

// NewConsumerService constructs a ConsumerService.
func NewConsumerService(consumers repository.ConsumerRepository, users repository.UserRepository, store storage.Storage, maxImageBytes int64) ConsumerService {
	return &consumerService{consumers: consumers, users: users, media: newMediaStore(store, maxImageBytes)}
}

func (s *consumerService) Create(ctx context.Context, actor *model.Principal, in CreateConsumerInput) (*model.Consumer, error) {
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
	if user.Role != model.RoleConsumer {
		return nil, invalid("user is not a consumer")
	}
	if _, err := s.consumers.FindByAuthID(ctx, in.AuthID); err == nil {
		return nil, conflict("consumer profile already exists")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	now := timeNow()
	c, err := s.consumers.Create(ctx, &model.Consumer{
		ID:             newID(),
		AuthID:         in.AuthID,
		FullName:       in.FullName,
		Username:       in.Username,
		PhoneNumber:    in.PhoneNumber,
		DOB:            in.DOB,
		Gender:         in.Gender,
		Country:        in.Country,
		ProfilePicture: in.ProfilePicture,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return nil, translate(referenced(err, "user"), "consumer", "username already in use")
	}
	return c, nil
}

func (s *consumerService) FindAll(ctx context.Context) ([]model.Consumer, error) {
	items, err := s.consumers.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Consumer{}
	}
	return items, nil
}

func (s *consumerService) List(ctx context.Context, page, size int, search string) (*Page[model.Consumer], error) {
	page, size = NormalizePage(page, size)
	res, err := s.consumers.List(ctx, repository.ConsumerQuery{
		PageQuery: repository.PageQuery{Limit: size, Offset: offsetOf(page, size)},
		Search:    strings.TrimSpace(search),
	})
	if err != nil {
		return nil, err
	}
	return newPage(res.Items, page, size, res.Total), nil
}

func (s *consumerService) GetByID(ctx context.Context, id string) (*model.Consumer, error) {
	c, err := s.consumers.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "consumer", "")
	}
	return c, nil
}

func (s *consumerService) GetByAuthID(ctx context.Context, authID string) (*model.Consumer, error) {
	c, err := s.consumers.FindByAuthID(ctx, authID)
	if err != nil {
		return nil, translate(err, "consumer", "")
	}
	return c, nil
}

func (s *consumerService) GetByUsername(ctx context.Context, username string) (*model.Consumer, error) {
	c, err := s.consumers.FindByUsername(ctx, username)
	if err != nil {
		return nil, translate(err, "consumer", "")
	}
	return c, nil
}

func (s *consumerService) Update(ctx context.Context, actor *model.Principal, id string, u model.ConsumerUpdate) (*model.Consumer, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(existing.AuthID) {
		return nil, forbidden("cannot modify another consumer")
	}
	if u.Username != nil && strings.TrimSpace(*u.Username) == "" {
		return nil, invalid("username cannot be empty")
	}
	c, err := s.consumers.Update(ctx, id, u)
	if err != nil {
		return nil, translate(err, "consumer", "username already in use")
	}
	return c, nil
}

func (s *consumerService) UpdateProfilePicture(ctx context.Context, actor *model.Principal, authID string, up Upload) (*model.Consumer, error) {
	existing, err := s.GetByAuthID(ctx, authID)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(existing.AuthID) {
		return nil, forbidden("cannot modify another consumer")
	}

	var updated *model.Consumer
	err = s.media.attach(ctx, KindProfilePictures, authID, existing.ProfilePicture, up, func(path string) error {
		c, err := s.consumers.UpdateProfilePicture(ctx, authID, path)
		if err != nil {
			return translate(err, "consumer", "")
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *consumerService) Delete(ctx context.Context, actor *model.Principal, authID string) error {
	existing, err := s.GetByAuthID(ctx, authID)
	if err != nil {
		return err
	}
	if !actor.Owns(existing.AuthID) {
		return forbidden("cannot delete another consumer")
	}
	if err := s.users.Delete(ctx, authID); err != nil {
		return translate(err, "consumer", "")
	}
	// The row is gone; a leftover picture is only wasted space.
	_ = s.media.remove(ctx, existing.ProfilePicture)
	return nil
}
