// Package identity holds the application services for accounts and
// authentication.
package identity

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/shopadmin/backend/internal/domain/identity"
	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/shopadmin/backend/internal/infrastructure/auth"
)

// LoginRequest carries sign-in credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest creates a buyer account
type RegisterRequest struct {
	Email           string           `json:"email" binding:"required,email"`
	Name            string           `json:"name" binding:"required,min=1,max=128"`
	Password        string           `json:"password" binding:"required,min=8"`
	RegionID        *uint            `json:"region_id"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
}

// UpdateUserRequest changes a user's personalization settings
type UpdateUserRequest struct {
	Name            *string          `json:"name" binding:"omitempty,min=1,max=128"`
	RegionID        *uint            `json:"region_id"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID              uint            `json:"id"`
	Email           string          `json:"email"`
	Name            string          `json:"name"`
	RegionID        *uint           `json:"region_id"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	IsAdmin         bool            `json:"is_admin"`
}

// LoginResponse is the sign-in result
type LoginResponse struct {
	Token *auth.Token  `json:"token"`
	User  UserResponse `json:"user"`
}

// AuthService handles sign-in and account management
type AuthService struct {
	users identity.UserRepository
	jwt   *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(users identity.UserRepository, jwt *auth.JWTService) *AuthService {
	return &AuthService{users: users, jwt: jwt}
}

// Login verifies credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.CheckPassword(req.Password) {
		return nil, shared.ErrInvalidCredentials
	}

	token, err := s.jwt.Issue(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

// Register creates a buyer account
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "User with this email already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	user, err := identity.NewUser(req.Email, req.Name, req.Password)
	if err != nil {
		return nil, err
	}
	user.RegionID = req.RegionID
	if req.DiscountPercent != nil {
		if err := validateDiscount(*req.DiscountPercent); err != nil {
			return nil, err
		}
		user.DiscountPercent = *req.DiscountPercent
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// Get returns one user
func (s *AuthService) Get(ctx context.Context, id uint) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// Update changes a user's name, region or personal discount
func (s *AuthService) Update(ctx context.Context, id uint, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.RegionID != nil {
		user.RegionID = req.RegionID
	}
	if req.DiscountPercent != nil {
		if err := validateDiscount(*req.DiscountPercent); err != nil {
			return nil, err
		}
		user.DiscountPercent = *req.DiscountPercent
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func validateDiscount(d decimal.Decimal) error {
	if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount must be between 0 and 100 percent")
	}
	return nil
}

func toUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		RegionID:        u.RegionID,
		DiscountPercent: u.DiscountPercent,
		IsAdmin:         u.IsAdmin,
	}
}
