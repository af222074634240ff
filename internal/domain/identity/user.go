package identity

import (
	"context"
	"strings"

	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// User is an account that can sign in to the admin panel. Buyer accounts
// additionally carry a region and a personal discount which personalize
// price and stock fields on exports.
type User struct {
	shared.BaseEntity
	Email           string          `gorm:"type:varchar(255);not null;uniqueIndex"`
	Name            string          `gorm:"type:varchar(128);not null"`
	PasswordHash    string          `gorm:"type:varchar(128);not null"`
	RegionID        *uint           `gorm:"index"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	IsAdmin         bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a user with a bcrypt-hashed password
func NewUser(email, name, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email address is required")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		Email:           email,
		Name:            name,
		PasswordHash:    string(hash),
		DiscountPercent: decimal.Zero,
	}, nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// PersonalPrice applies the user's personal discount to a base-currency price
func (u *User) PersonalPrice(price decimal.Decimal) decimal.Decimal {
	if u.DiscountPercent.IsZero() {
		return price
	}
	hundred := decimal.NewFromInt(100)
	return price.Mul(hundred.Sub(u.DiscountPercent)).Div(hundred).Round(2)
}

// UserRepository persists users
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error
}
