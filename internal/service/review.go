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

// CreateReviewInput is the payload for a new review. AuthorID defaults to the caller.
type CreateReviewInput struct {
	Title          string
	Description    string
	Sentiments     []string
	ProductName    string
	ProductImage   string
	AuthorID       string
	AuthorLocation string
}

// ReviewFilter narrows a review listing. Empty fields are ignored.
type ReviewFilter struct {
	Search      string
	Sentiment   string
	ProductName string
}

// ReviewService manages reviews and their likes.
type ReviewService interface {
	Create(ctx context.Context, actor *model.Principal, in CreateReviewInput) (*model.Review, error)
	Get(ctx context.Context, id string) (*model.Review, error)
	// ListByAuthor returns the author's reviews, newest first.
	ListByAuthor(ctx context.Context, authorID string) ([]model.Review, error)
	List(ctx context.Context, page, size int, f ReviewFilter) (*Page[model.Review], error)
	Update(ctx context.Context, actor *model.Principal, id string, u model.ReviewUpdate) (*model.Review, error)
	Delete(ctx context.Context, actor *model.Principal, id string) error
	UploadImage(ctx context.Context, actor *model.Principal, id string, up Upload) (*model.Review, error)
	Like(ctx context.Context, actor *model.Principal, id, userID string) (*model.Review, error)
	Unlike(ctx context.Context, actor *model.Principal, id, userID string) (*model.Review, error)
	// IsLikedBy reports false for reviews that do not exist.
	IsLikedBy(ctx context.Context, id, userID string) (bool, error)
}

type reviewService struct {
	reviews repository.ReviewRepository
	media   *mediaStore
}

// NewReviewService constructs a ReviewService.
func NewReviewService(reviews repository.ReviewRepository, store storage.Storage, maxImageBytes int64) ReviewService {
	return &reviewService{reviews: reviews, media: newMediaStore(store, maxImageBytes)}
}

func (s *reviewService) Create(ctx context.Context, actor *model.Principal, in CreateReviewInput) (*model.Review, error) {
	if actor == nil {
		return nil, unauthorized("authentication required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, invalid("title is required")
	}
	if in.AuthorID == "" {
		in.AuthorID = actor.ID
	}
	if !actor.Owns(in.AuthorID) {
		return nil, forbidden("cannot post a review as another user")
	}

	now := timeNow()
	r, err := s.reviews.Create(ctx, &model.Review{
		ID:             newID(),
		Title:          strings.TrimSpace(in.Title),
		Description:    in.Description,
		Sentiments:     CleanList(in.Sentiments),
		ProductName:    in.ProductName,
		ProductImage:   in.ProductImage,
		AuthorID:       in.AuthorID,
		AuthorLocation: in.AuthorLocation,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return nil, translate(referenced(err, "author"), "review", "review already exists")
	}
	return r, nil
}

func (s *reviewService) Get(ctx context.Context, id string) (*model.Review, error) {
	r, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "review", "")
	}
	return r, nil
}

func (s *reviewService) ListByAuthor(ctx context.Context, authorID string) ([]model.Review, error) {
	items, err := s.reviews.FindByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Review{}
	}
	return items, nil
}

func (s *reviewService) List(ctx context.Context, page, size int, f ReviewFilter) (*Page[model.Review], error) {
	page, size = NormalizePage(page, size)
	res, err := s.reviews.List(ctx, repository.ReviewQuery{
		PageQuery:   repository.PageQuery{Limit: size, Offset: offsetOf(page, size)},
		Search:      strings.TrimSpace(f.Search),
		Sentiment:   strings.TrimSpace(f.Sentiment),
		ProductName: strings.TrimSpace(f.ProductName),
	})
	if err != nil {
		return nil, err
	}
	return newPage(res.Items, page, size, res.Total), nil
}

func (s *reviewService) owned(ctx context.Context, actor *model.Principal, id string) (*model.Review, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(r.AuthorID) {
		return nil, forbidden("only the author or an admin can modify this review")
	}
	return r, nil
}

func (s *reviewService) Update(ctx context.Context, actor *model.Principal, id string, u model.ReviewUpdate) (*model.Review, error) {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return nil, err
	}
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return nil, invalid("title cannot be empty")
	}
	if u.Sentiments != nil {
		cleaned := CleanList(*u.Sentiments)
		u.Sentiments = &cleaned
	}
	r, err := s.reviews.Update(ctx, id, u)
	if err != nil {
		return nil, translate(err, "review", "review already exists")
	}
	return r, nil
}

func (s *reviewService) Delete(ctx context.Context, actor *model.Principal, id string) error {
	r, err := s.owned(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.media.remove(ctx, r.Image); err != nil {
		return err
	}
	return translate(s.reviews.Delete(ctx, id), "review", "")
}

func (s *reviewService) UploadImage(ctx context.Context, actor *model.Principal, id string, up Upload) (*model.Review, error) {
	existing, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	var updated *model.Review
	err = s.media.attach(ctx, KindReviews, id, existing.Image, up, func(path string) error {
		r, err := s.reviews.UpdateImage(ctx, id, path)
		if err != nil {
			return translate(err, "review", "")
		}
		updated = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *reviewService) Like(ctx context.Context, actor *model.Principal, id, userID string) (*model.Review, error) {
	uid, err := liker(actor, userID)
	if err != nil {
		return nil, err
	}
	r, _, err := s.reviews.Like(ctx, id, uid)
	if err != nil {
		return nil, translate(err, "review", "")
	}
	return r, nil
}

func (s *reviewService) Unlike(ctx context.Context, actor *model.Principal, id, userID string) (*model.Review, error) {
	uid, err := liker(actor, userID)
	if err != nil {
		return nil, err
	}
	r, _, err := s.reviews.Unlike(ctx, id, uid)
	if err != nil {
		return nil, translate(err, "review", "")
	}
	return r, nil
}

func (s *reviewService) IsLikedBy(ctx context.Context, id, userID string) (bool, error) {
	liked, err := s.reviews.IsLikedBy(ctx, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return liked, err
}
