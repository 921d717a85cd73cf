package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"reviewapi/internal/auth"
	"reviewapi/internal/model"
	"reviewapi/internal/repository"
)

// RegisterConsumerInput is the payload for consumer sign-up.
type RegisterConsumerInput struct {
	Email          string
	Password       string
	FullName       string
	Username       string
	PhoneNumber    string
	DOB            string
	Gender         string
	Country        string
	ProfilePicture string
}

// RegisterRetailerInput is the payload for retailer sign-up.
type RegisterRetailerInput struct {
	Email               string
	Password            string
	OwnerName           string
	OrganizationName    string
	Username            string
	PhoneNumber         string
	DateOfEstablishment string
	Country             string
	ProfilePicture      string
}

// AuthResult is returned by registration and login.
type AuthResult struct {
	Token string          `json:"token"`
	User  model.Principal `json:"user"`
}

// AuthService handles credentials and sessions.
type AuthService interface {
	// RegisterConsumer creates the user and its consumer profile. When the profile
	// cannot be stored the user is deleted again.
	RegisterConsumer(ctx context.Context, in RegisterConsumerInput) (*AuthResult, error)
	RegisterRetailer(ctx context.Context, in RegisterRetailerInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Logout revokes token until it would expire.
	Logout(ctx context.Context, token string) error
	// Authenticate resolves a bearer token to the caller.
	Authenticate(ctx context.Context, token string) (*model.Principal, error)
	CurrentUser(ctx context.Context, userID string) (*model.Principal, error)
	CreateAdmin(ctx context.Context, email, password string) (*model.User, error)
}

// AuthDeps groups what the auth service needs.
type AuthDeps struct {
	Users     repository.UserRepository
	Consumers repository.ConsumerRepository
	Retailers repository.RetailerRepository
	Hasher    *auth.PasswordHasher
	Tokens    *auth.TokenManager
	Denylist  *auth.Denylist
}

type authService struct {
	AuthDeps
}

// NewAuthService constructs an AuthService.
func NewAuthService(deps AuthDeps) AuthService {
	return &authService{AuthDeps: deps}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func principalOf(u *model.User) model.Principal {
	return model.Principal{ID: u.ID, Email: u.Email, Role: u.Role}
}

func (s *authService) RegisterConsumer(ctx context.Context, in RegisterConsumerInput) (*AuthResult, error) {
	if strings.TrimSpace(in.Username) == "" {
		return nil, invalid("username is required")
	}
	if _, err := s.Consumers.FindByUsername(ctx, in.Username); err == nil {
		return nil, conflict("username already in use")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	user, err := s.createUser(ctx, in.Email, in.Password, model.RoleConsumer)
	if err != nil {
		return nil, err
	}

	now := timeNow()
	_, err = s.Consumers.Create(ctx, &model.Consumer{
		ID:             newID(),
		AuthID:         user.ID,
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
		return nil, s.rollbackUser(ctx, user.ID, translate(err, "consumer", "username already in use"))
	}
	return s.issue(user)
}

func (s *authService) RegisterRetailer(ctx context.Context, in RegisterRetailerInput) (*AuthResult, error) {
	if strings.TrimSpace(in.Username) == "" {
		return nil, invalid("username is required")
	}
	if _, err := s.Retailers.FindByUsername(ctx, in.Username); err == nil {
		return nil, conflict("username already in use")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	user, err := s.createUser(ctx, in.Email, in.Password, model.RoleRetailer)
	if err != nil {
		return nil, err
	}

	now := timeNow()
	_, err = s.Retailers.Create(ctx, &model.Retailer{
		ID:                  newID(),
		AuthID:              user.ID,
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
		return nil, s.rollbackUser(ctx, user.ID, translate(err, "retailer", "username already in use"))
	}
	return s.issue(user)
}

func (s *authService) createUser(ctx context.Context, email, password, role string) (*model.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, invalid("email and password are required")
	}
	if _, err := s.Users.FindByEmail(ctx, email); err == nil {
		return nil, conflict("email already in use")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	now := timeNow()
	user, err := s.Users.Create(ctx, &model.User{
		ID:           newID(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, translate(err, "user", "email already in use")
	}
	return user, nil
}

func (s *authService) rollbackUser(ctx context.Context, userID string, cause error) error {
	if delErr := s.Users.Delete(ctx, userID); delErr != nil {
		return fmt.Errorf("profile save failed: %v; rollback delete failed: %v", cause, delErr)
	}
	return cause
}

func (s *authService) issue(u *model.User) (*AuthResult, error) {
	token, _, err := s.Tokens.Generate(u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: principalOf(u)}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.Users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, unauthorized("invalid credentials")
	}
	if err != nil {
		return nil, err
	}
	if err := s.Hasher.Verify(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, unauthorized("invalid credentials")
		}
		return nil, err
	}
	return s.issue(user)
}

func (s *authService) Logout(_ context.Context, token string) error {
	claims, err := s.Tokens.Validate(token)
	if err != nil {
		return unauthorized("invalid or expired token")
	}
	return s.Denylist.Revoke(claims.ID, claims.ExpiresAt.Time)
}

func (s *authService) Authenticate(ctx context.Context, token string) (*model.Principal, error) {
	claims, err := s.Tokens.Validate(token)
	if err != nil {
		return nil, unauthorized("invalid or expired token")
	}
	revoked, err := s.Denylist.IsRevoked(claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, unauthorized("token has been revoked")
	}
	user, err := s.Users.FindByID(ctx, claims.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, unauthorized("user no longer exists")
	}
	if err != nil {
		return nil, err
	}
	p := principalOf(user)
	return &p, nil
}

func (s *authService) CurrentUser(ctx context.Context, userID string) (*model.Principal, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, translate(err, "user", "")
	}
	p := principalOf(user)
	return &p, nil
}

func (s *authService) CreateAdmin(ctx context.Context, email, password string) (*model.User, error) {
	return s.createUser(ctx, email, password, model.RoleAdmin)
}
