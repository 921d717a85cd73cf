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

// CreateProductInput is the payload for a new product. RetailerAuthID is only
// honored for admins; retailers always create under their own account.
type CreateProductInput struct {
	Title           string
	Description     string
	RetailerAuthID  string
	RetailerName    string
	RetailerIcon    string
	TargetSentiment []string
}

// ProductLike is the outcome of a like or unlike.
type ProductLike struct {
	ProductID string `json:"product_id"`
	UserID    string `json:"user_id"`
	Liked     bool   `json:"liked"`
	NoOfLikes int    `json:"no_of_likes"`
}

// ProductService manages products and their likes.
type ProductService interface {
	Create(ctx context.Context, actor *model.Principal, in CreateProductInput) (*model.Product, error)
	List(ctx context.Context, page, size int, search string) (*Page[model.Product], error)
	ListByRetailer(ctx context.Context, retailerAuthID string, page, size int) (*Page[model.Product], error)
	Get(ctx context.Context, id string) (*model.Product, error)
	Update(ctx context.Context, actor *model.Principal, id string, u model.ProductUpdate) (*model.Product, error)
	// Delete removes the product and its image object.
	Delete(ctx context.Context, actor *model.Principal, id string) error
	UploadImage(ctx context.Context, actor *model.Principal, id string, up Upload) (*model.Product, error)
	// Like adds userID (the caller when empty) to the product's likes. Liking twice is a no-op.
	Like(ctx context.Context, actor *model.Principal, productID, userID string) (*ProductLike, error)
	Unlike(ctx context.Context, actor *model.Principal, productID, userID string) (*ProductLike, error)
	IsLiked(ctx context.Context, productID, userID string) (bool, error)
}

type productService struct {
	products  repository.ProductRepository
	retailers repository.RetailerRepository
	media     *mediaStore
}

// NewProductService constructs a ProductService.
func NewProductService(products repository.ProductRepository, retailers repository.RetailerRepository, store storage.Storage, maxImageBytes int64) ProductService {
	return &productService{products: products, retailers: retailers, media: newMediaStore(store, maxImageBytes)}
}

func (s *productService) Create(ctx context.Context, actor *model.Principal, in CreateProductInput) (*model.Product, error) {
	if actor == nil {
		return nil, unauthorized("authentication required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, invalid("title is required")
	}
	if !actor.IsAdmin() || in.RetailerAuthID == "" {
		in.RetailerAuthID = actor.ID
	}

	// Name and icon default to the retailer's profile.
	if in.RetailerName == "" || in.RetailerIcon == "" {
		r, err := s.retailers.FindByAuthID(ctx, in.RetailerAuthID)
		switch {
		case err == nil:
			if in.RetailerName == "" {
				in.RetailerName = r.OrganizationName
			}
			if in.RetailerIcon == "" {
				in.RetailerIcon = r.ProfilePicture
			}
		case !errors.Is(err, sql.ErrNoRows):
			return nil, err
		}
	}

	now := timeNow()
	p, err := s.products.Create(ctx, &model.Product{
		ID:              newID(),
		Title:           strings.TrimSpace(in.Title),
		Description:     in.Description,
		RetailerAuthID:  in.RetailerAuthID,
		RetailerName:    in.RetailerName,
		RetailerIcon:    in.RetailerIcon,
		TargetSentiment: CleanList(in.TargetSentiment),
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return nil, translate(referenced(err, "retailer"), "product", "product already exists")
	}
	return p, nil
}

func (s *productService) List(ctx context.Context, page, size int, search string) (*Page[model.Product], error) {
	return s.list(ctx, page, size, repository.ProductQuery{Search: strings.TrimSpace(search)})
}

func (s *productService) ListByRetailer(ctx context.Context, retailerAuthID string, page, size int) (*Page[model.Product], error) {
	return s.list(ctx, page, size, repository.ProductQuery{RetailerAuthID: retailerAuthID})
}

func (s *productService) list(ctx context.Context, page, size int, q repository.ProductQuery) (*Page[model.Product], error) {
	page, size = NormalizePage(page, size)
	q.PageQuery = repository.PageQuery{Limit: size, Offset: offsetOf(page, size)}
	res, err := s.products.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return newPage(res.Items, page, size, res.Total), nil
}

func (s *productService) Get(ctx context.Context, id string) (*model.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "product", "")
	}
	return p, nil
}

// owned loads the product and checks the caller may modify it.
func (s *productService) owned(ctx context.Context, actor *model.Principal, id string) (*model.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(p.RetailerAuthID) {
		return nil, forbidden("only the owning retailer or an admin can modify this product")
	}
	return p, nil
}

func (s *productService) Update(ctx context.Context, actor *model.Principal, id string, u model.ProductUpdate) (*model.Product, error) {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return nil, err
	}
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return nil, invalid("title cannot be empty")
	}
	if u.TargetSentiment != nil {
		cleaned := CleanList(*u.TargetSentiment)
		u.TargetSentiment = &cleaned
	}
	p, err := s.products.Update(ctx, id, u)
	if err != nil {
		return nil, translate(err, "product", "product already exists")
	}
	return p, nil
}

func (s *productService) Delete(ctx context.Context, actor *model.Principal, id string) error {
	p, err := s.owned(ctx, actor, id)
	if err != nil {
		return err
	}
	// Storage goes first so a failure keeps the row and its reference.
	if err := s.media.remove(ctx, p.Image); err != nil {
		return err
	}
	return translate(s.products.Delete(ctx, id), "product", "")
}

func (s *productService) UploadImage(ctx context.Context, actor *model.Principal, id string, up Upload) (*model.Product, error) {
	existing, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	var updated *model.Product
	err = s.media.attach(ctx, KindProducts, id, existing.Image, up, func(path string) error {
		p, err := s.products.UpdateImage(ctx, id, path)
		if err != nil {
			return translate(err, "product", "")
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// liker resolves whose like is being recorded. Only admins may act for someone else.
func liker(actor *model.Principal, userID string) (string, error) {
	if actor == nil {
		return "", unauthorized("authentication required")
	}
	if userID == "" || userID == actor.ID {
		return actor.ID, nil
	}
	if !actor.IsAdmin() {
		return "", forbidden("cannot like on behalf of another user")
	}
	return userID, nil
}

func (s *productService) Like(ctx context.Context, actor *model.Principal, productID, userID string) (*ProductLike, error) {
	uid, err := liker(actor, userID)
	if err != nil {
		return nil, err
	}
	p, _, err := s.products.Like(ctx, productID, uid)
	if err != nil {
		return nil, translate(err, "product", "")
	}
	return &ProductLike{ProductID: p.ID, UserID: uid, Liked: true, NoOfLikes: p.NoOfLikes}, nil
}

func (s *productService) Unlike(ctx context.Context, actor *model.Principal, productID, userID string) (*ProductLike, error) {
	uid, err := liker(actor, userID)
	if err != nil {
		return nil, err
	}
	p, _, err := s.products.Unlike(ctx, productID, uid)
	if err != nil {
		return nil, translate(err, "product", "")
	}
	return &ProductLike{ProductID: p.ID, UserID: uid, Liked: false, NoOfLikes: p.NoOfLikes}, nil
}

func (s *productService) IsLiked(ctx context.Context, productID, userID string) (bool, error) {
	if userID == "" {
		return false, invalid("user id is required")
	}
	liked, err := s.products.IsLikedBy(ctx, productID, userID)
	if err != nil {
		return false, translate(err, "product", "")
	}
	return liked, nil
}
