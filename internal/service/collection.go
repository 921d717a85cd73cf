package service

import (
	"context"
	"database/sql"
	"errors"

	"golang.org/x/sync/errgroup"

	"reviewapi/internal/model"
	"reviewapi/internal/repository"
)

// fetchConcurrency bounds the parallel item lookups of one page.
const fetchConcurrency = 8

// CollectionService manages the items a consumer has saved.
// An empty consumerAuthID means the caller.
type CollectionService interface {
	SaveReview(ctx context.Context, actor *model.Principal, consumerAuthID, reviewID string) (*model.Collection, error)
	UnsaveReview(ctx context.Context, actor *model.Principal, consumerAuthID, reviewID string) (*model.Collection, error)
	SaveProduct(ctx context.Context, actor *model.Principal, consumerAuthID, productID string) (*model.Collection, error)
	UnsaveProduct(ctx context.Context, actor *model.Principal, consumerAuthID, productID string) (*model.Collection, error)
	// SavedReviews pages over saved review ids; reviews deleted since are skipped.
	SavedReviews(ctx context.Context, actor *model.Principal, consumerAuthID string, page, size int) (*Page[model.Review], error)
	SavedProducts(ctx context.Context, actor *model.Principal, consumerAuthID string, page, size int) (*Page[model.Product], error)
}

type collectionService struct {
	collections repository.CollectionRepository
	users       repository.UserRepository
	reviews     repository.ReviewRepository
	products    repository.ProductRepository
}

// NewCollectionService constructs a CollectionService.
func NewCollectionService(collections repository.CollectionRepository, users repository.UserRepository, reviews repository.ReviewRepository, products repository.ProductRepository) CollectionService {
	return &collectionService{collections: collections, users: users, reviews: reviews, products: products}
}

func owner(actor *model.Principal, consumerAuthID string) (string, error) {
	if actor == nil {
		return "", unauthorized("authentication required")
	}
	if consumerAuthID == "" {
		consumerAuthID = actor.ID
	}
	if !actor.Owns(consumerAuthID) {
		return "", forbidden("cannot access another consumer's collection")
	}
	return consumerAuthID, nil
}

// saver resolves the collection a save writes to. Only consumers have collections,
// so an admin saving on someone's behalf must name an existing consumer.
func (s *collectionService) saver(ctx context.Context, actor *model.Principal, consumerAuthID string) (string, error) {
	id, err := owner(actor, consumerAuthID)
	if err != nil {
		return "", err
	}
	if id == actor.ID && actor.Role == model.RoleConsumer {
		return id, nil
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return "", translate(err, "consumer", "")
	}
	if u.Role != model.RoleConsumer {
		return "", invalid("user is not a consumer")
	}
	return id, nil
}

func (s *collectionService) SaveReview(ctx context.Context, actor *model.Principal, consumerAuthID, reviewID string) (*model.Collection, error) {
	id, err := s.saver(ctx, actor, consumerAuthID)
	if err != nil {
		return nil, err
	}
	if _, err := s.reviews.FindByID(ctx, reviewID); err != nil {
		return nil, translate(err, "review", "")
	}
	c, err := s.collections.AddReview(ctx, id, reviewID)
	if err != nil {
		return nil, translate(referenced(err, "consumer"), "collection", "")
	}
	return c, nil
}

func (s *collectionService) UnsaveReview(ctx context.Context, actor *model.Principal, consumerAuthID, reviewID string) (*model.Collection, error) {
	id, err := owner(actor, consumerAuthID)
	if err != nil {
		return nil, err
	}
	c, err := s.collections.RemoveReview(ctx, id, reviewID)
	if err != nil {
		return nil, translate(err, "collection", "")
	}
	return c, nil
}

func (s *collectionService) SaveProduct(ctx context.Context, actor *model.Principal, consumerAuthID, productID string) (*model.Collection, error) {
	id, err := s.saver(ctx, actor, consumerAuthID)
	if err != nil {
		return nil, err
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, translate(err, "product", "")
	}
	c, err := s.collections.AddProduct(ctx, id, productID)
	if err != nil {
		return nil, translate(referenced(err, "consumer"), "collection", "")
	}
	return c, nil
}

func (s *collectionService) UnsaveProduct(ctx context.Context, actor *model.Principal, consumerAuthID, productID string) (*model.Collection, error) {
	id, err := owner(actor, consumerAuthID)
	if err != nil {
		return nil, err
	}
	c, err := s.collections.RemoveProduct(ctx, id, productID)
	if err != nil {
		return nil, translate(err, "collection", "")
	}
	return c, nil
}

func (s *collectionService) SavedReviews(ctx context.Context, actor *model.Principal, consumerAuthID string, page, size int) (*Page[model.Review], error) {
	id, err := owner(actor, consumerAuthID)
	if err != nil {
		return nil, err
	}
	ids, err := s.savedIDs(ctx, id, func(c *model.Collection) []string { return c.SavedReviews })
	if err != nil {
		return nil, err
	}
	return fetchPage(ctx, ids, page, size, s.reviews.FindByID)
}

func (s *collectionService) SavedProducts(ctx context.Context, actor *model.Principal, consumerAuthID string, page, size int) (*Page[model.Product], error) {
	id, err := owner(actor, consumerAuthID)
	if err != nil {
		return nil, err
	}
	ids, err := s.savedIDs(ctx, id, func(c *model.Collection) []string { return c.SavedProducts })
	if err != nil {
		return nil, err
	}
	return fetchPage(ctx, ids, page, size, s.products.FindByID)
}

// savedIDs returns the chosen id list; a consumer without a collection has none.
func (s *collectionService) savedIDs(ctx context.Context, consumerAuthID string, pick func(*model.Collection) []string) ([]string, error) {
	c, err := s.collections.FindByConsumer(ctx, consumerAuthID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return pick(c), nil
}

// fetchPage slices ids to the requested page and loads the items concurrently,
// keeping id order and skipping ids whose target no longer exists.
func fetchPage[T any](ctx context.Context, ids []string, page, size int, find func(context.Context, string) (*T, error)) (*Page[T], error) {
	page, size = NormalizePage(page, size)
	total := len(ids)
	start := min(offsetOf(page, size), total)
	end := min(start+size, total)
	window := ids[start:end]

	found := make([]*T, len(window))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, id := range window {
		g.Go(func() error {
			item, err := find(gctx, id)
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			if err != nil {
				return err
			}
			found[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]T, 0, len(window))
	for _, it := range found {
		if it != nil {
			items = append(items, *it)
		}
	}
	p := newPage(items, page, size, total)
	if p.Pagination.TotalPages < 1 {
		p.Pagination.TotalPages = 1
	}
	return p, nil
}
