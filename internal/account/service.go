// Package account is the identity store: registration, login, identity
// resolution for bearer tokens and the vendor profile.
package account

import (
	"context"  // Request-scoped deadlines
	"errors"   // Error inspection
	"fmt"      // Error wrapping
	"net/mail" // Email syntax check
	"strings"  // String manipulation
	"time"     // Durations

	"marketplace/internal/authz"  // Identity type and predicates
	"marketplace/internal/domain" // Domain models and errors
	"marketplace/internal/utils"  // JWT and cache helpers

	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Structured logging
	"golang.org/x/crypto/bcrypt"   // Password hashing
	"gorm.io/gorm"                 // GORM ORM library
)

// Options configures token issuance and caching
type Options struct {
	JWTSecret string        // HMAC secret for issued tokens
	JWTTTL    time.Duration // Token lifetime
	CacheTTL  time.Duration // Vendor profile cache lifetime
}

// Service manages users and vendor profiles
type Service struct {
	db   *gorm.DB
	rdb  *redis.Client // nil disables caching
	opts Options
}

// NewService creates the identity store on an explicit store handle
func NewService(db *gorm.DB, rdb *redis.Client, opts Options) *Service {
	return &Service{db: db, rdb: rdb, opts: opts}
}

// RegisterInput is a validated registration request
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     domain.Role
}

// AuthResult is returned by Register and Login
type AuthResult struct {
	User   domain.User    `json:"user"`
	Vendor *domain.Vendor `json:"vendor,omitempty"`
	Token  string         `json:"token"`
}

func (in RegisterInput) validate() error {
	addr, err := mail.ParseAddress(in.Email)
	if err != nil || addr.Address != in.Email {
		return domain.Invalid("email is not valid") // Display-name forms are rejected
	}
	// bcrypt ignores input past 72 bytes
	if len(in.Password) < 6 || len(in.Password) > 72 {
		return domain.Invalid("password must be 6-72 characters")
	}
	if len(strings.TrimSpace(in.Name)) < 2 {
		return domain.Invalid("name must be at least 2 characters")
	}
	if !in.Role.Valid() {
		return domain.Invalid("role must be CLIENT or VENDOR")
	}
	return nil
}

// Register creates a user, and for vendors its Vendor profile, in one transaction
func (s *Service) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Email = domain.NormalizeEmail(in.Email)
	if err := in.validate(); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	res := &AuthResult{User: domain.User{
		Email:    in.Email,
		Password: string(hash),
		Name:     strings.TrimSpace(in.Name),
		Role:     in.Role,
	}}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: email already exists", domain.ErrConflict)
		}
		if err := tx.Create(&res.User).Error; err != nil {
			return err // Unique index catches a concurrent duplicate
		}
		if in.Role == domain.RoleVendor {
			res.Vendor = &domain.Vendor{UserID: res.User.ID}
			if err := tx.Create(res.Vendor).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		err = domain.StoreError(err)
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: email already exists", domain.ErrConflict)
		}
		logrus.WithFields(logrus.Fields{"role": in.Role, "error": err.Error()}).Error("Registration failed")
		return nil, err
	}

	if res.Token, err = utils.GenerateJWT(res.User.ID, s.opts.JWTSecret, s.opts.JWTTTL); err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"user_id": res.User.ID,
		"role":    res.User.Role,
	}).Info("User registered")
	return res, nil
}

// Login checks credentials and issues a token. Unknown email and wrong password are indistinguishable.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("email = ?", domain.NormalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrInvalidCredentials
	} else if err != nil {
		return nil, domain.StoreError(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := utils.GenerateJWT(user.ID, s.opts.JWTSecret, s.opts.JWTTTL)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	res := &AuthResult{User: user, Token: token}
	if user.Role == domain.RoleVendor {
		var vendor domain.Vendor
		if err := s.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&vendor).Error; err == nil {
			res.Vendor = &vendor
		}
	}
	return res, nil
}

// Resolve loads the identity behind a token's user id
func (s *Service) Resolve(ctx context.Context, userID string) (authz.Identity, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return authz.Identity{}, domain.StoreError(err)
	}
	id := authz.Identity{UserID: user.ID, Role: user.Role}
	if user.Role != domain.RoleVendor {
		return id, nil
	}

	var vendor domain.Vendor
	err := s.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&vendor).Error
	switch {
	case err == nil:
		id.VendorID = vendor.ID
	case errors.Is(err, gorm.ErrRecordNotFound):
		logrus.WithField("user_id", user.ID).Warn("Vendor user has no vendor profile")
	default:
		return authz.Identity{}, domain.StoreError(err)
	}
	return id, nil
}

func vendorCacheKey(userID string) string {
	return "vendor:user:" + userID
}

// GetVendorByUserID returns the public vendor profile of a user
func (s *Service) GetVendorByUserID(ctx context.Context, userID string) (*domain.Vendor, error) {
	var vendor domain.Vendor
	key := vendorCacheKey(userID)
	if found, err := utils.GetCache(ctx, s.rdb, key, &vendor); err == nil && found {
		return &vendor, nil
	}

	err := s.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&vendor).Error
	if err != nil {
		return nil, fmt.Errorf("vendor for user %s: %w", userID, domain.StoreError(err))
	}
	_ = utils.SetCache(ctx, s.rdb, key, vendor, s.opts.CacheTTL)
	return &vendor, nil
}

// SetPaymentID stores the vendor's opaque external payment identifier
func (s *Service) SetPaymentID(ctx context.Context, id authz.Identity, paymentID string) (*domain.Vendor, error) {
	if err := authz.Require(authz.IsVendorRole(id), "set a payment id"); err != nil {
		return nil, err
	}
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" || len(paymentID) > 255 {
		return nil, domain.Invalid("payment id must be 1-255 characters")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vendor domain.Vendor
		if err := tx.Where("user_id = ?", id.UserID).First(&vendor).Error; err != nil {
			return err
		}
		return tx.Model(&vendor).Update("external_payment_id", paymentID).Error
	})
	if err != nil {
		return nil, fmt.Errorf("vendor for user %s: %w", id.UserID, domain.StoreError(err))
	}
	_ = utils.DeleteCache(ctx, s.rdb, vendorCacheKey(id.UserID))

	logrus.WithFields(logrus.Fields{"user_id": id.UserID}).Info("Vendor payment id updated")
	return s.GetVendorByUserID(ctx, id.UserID)
}
