// Package catalog is the product store. Reads are cached in redis; every
// mutation checks vendor ownership before it writes.
package catalog

import (
	"context" // Request-scoped deadlines
	"fmt"     // Error wrapping
	"net/url" // Image URL check
	"strings" // String manipulation
	"time"    // Cache lifetime

	"marketplace/internal/authz"  // Ownership predicates
	"marketplace/internal/domain" // Domain models and errors
	"marketplace/internal/utils"  // Cache helpers

	"github.com/redis/go-redis/v9"  // Redis client
	"github.com/shopspring/decimal" // Exact money arithmetic
	"github.com/sirupsen/logrus"    // Structured logging
	"gorm.io/gorm"                  // GORM ORM library
)

const listCacheKey = "products:all"

// Service manages products
type Service struct {
	db       *gorm.DB
	rdb      *redis.Client // nil disables caching
	cacheTTL time.Duration
}

// NewService creates the catalog store on an explicit store handle
func NewService(db *gorm.DB, rdb *redis.Client, cacheTTL time.Duration) *Service {
	return &Service{db: db, rdb: rdb, cacheTTL: cacheTTL}
}

// ProductInput is a validated create or update request
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
}

func (in *ProductInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Image = strings.TrimSpace(in.Image)

	if len(in.Name) < 2 {
		return domain.Invalid("name must be at least 2 characters")
	}
	if len(in.Description) < 10 {
		return domain.Invalid("description must be at least 10 characters")
	}
	if !in.Price.IsPositive() || in.Price.GreaterThanOrEqual(domain.MaxAmount) {
		return domain.Invalid("price must be positive and below %s", domain.MaxAmount)
	}
	if !in.Price.Equal(in.Price.Round(2)) {
		return domain.Invalid("price must have at most 2 decimal places")
	}
	u, err := url.ParseRequestURI(in.Image)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domain.Invalid("image must be an http(s) URL")
	}
	return nil
}

func productCacheKey(id string) string {
	return "product:" + id
}

func (s *Service) invalidate(ctx context.Context, id string) {
	if err := utils.DeleteCache(ctx, s.rdb, listCacheKey, productCacheKey(id)); err != nil {
		logrus.WithFields(logrus.Fields{"product_id": id, "error": err.Error()}).Warn("Product cache invalidation failed")
	}
}

// List returns every live product with its vendor
func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if found, err := utils.GetCache(ctx, s.rdb, listCacheKey, &products); err == nil && found {
		return products, nil
	}
	if err := s.db.WithContext(ctx).Preload("Vendor.User").Order("created_at, id").Find(&products).Error; err != nil {
		return nil, domain.StoreError(err)
	}
	_ = utils.SetCache(ctx, s.rdb, listCacheKey, products, s.cacheTTL)
	return products, nil
}

// Get returns one live product
func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	key := productCacheKey(id)
	if found, err := utils.GetCache(ctx, s.rdb, key, &product); err == nil && found {
		return &product, nil
	}
	if err := s.db.WithContext(ctx).Preload("Vendor.User").First(&product, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("product %s: %w", id, domain.StoreError(err))
	}
	_ = utils.SetCache(ctx, s.rdb, key, product, s.cacheTTL)
	return &product, nil
}

// ListByVendor returns the live products of one vendor
func (s *Service) ListByVendor(ctx context.Context, vendorID string) ([]domain.Product, error) {
	var products []domain.Product
	err := s.db.WithContext(ctx).Where("vendor_id = ?", vendorID).Order("created_at, id").Find(&products).Error
	if err != nil {
		return nil, domain.StoreError(err)
	}
	return products, nil
}

// Create adds a product owned by the calling vendor
func (s *Service) Create(ctx context.Context, id authz.Identity, in ProductInput) (*domain.Product, error) {
	if err := authz.Require(authz.IsVendorRole(id) && id.VendorID != "", "create products"); err != nil {
		return nil, err
	}
	if err := in.normalize(); err != nil {
		return nil, err
	}
	product := domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
		VendorID:    id.VendorID,
	}
	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, domain.StoreError(err)
	}
	s.invalidate(ctx, product.ID)

	logrus.WithFields(logrus.Fields{
		"product_id": product.ID,
		"vendor_id":  product.VendorID,
		"price":      product.Price.String(),
	}).Info("Product created")
	return &product, nil
}

// Update replaces a product's editable fields. Only the owning vendor may do this.
func (s *Service) Update(ctx context.Context, id authz.Identity, productID string, in ProductInput) (*domain.Product, error) {
	if err := authz.Require(authz.IsVendorRole(id), "update products"); err != nil {
		return nil, err
	}
	if err := in.normalize(); err != nil {
		return nil, err
	}
	var product domain.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			return fmt.Errorf("product %s: %w", productID, domain.StoreError(err))
		}
		if err := authz.Require(authz.IsOwnerOfProduct(id, &product), "update this product"); err != nil {
			return err
		}
		return tx.Model(&product).Updates(map[string]any{
			"name":        in.Name,
			"description": in.Description,
			"price":       in.Price,
			"image":       in.Image,
		}).Error
	})
	if err != nil {
		return nil, domain.StoreError(err)
	}
	s.invalidate(ctx, productID)

	logrus.WithFields(logrus.Fields{
		"product_id": productID,
		"vendor_id":  id.VendorID,
		"price":      in.Price.String(),
	}).Info("Product updated")
	return s.Get(ctx, productID)
}

// Delete soft-deletes a product. Existing order lines keep resolving it.
func (s *Service) Delete(ctx context.Context, id authz.Identity, productID string) error {
	if err := authz.Require(authz.IsVendorRole(id), "delete products"); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product domain.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			return fmt.Errorf("product %s: %w", productID, domain.StoreError(err))
		}
		if err := authz.Require(authz.IsOwnerOfProduct(id, &product), "delete this product"); err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
	if err != nil {
		return domain.StoreError(err)
	}
	s.invalidate(ctx, productID)

	logrus.WithFields(logrus.Fields{"product_id": productID, "vendor_id": id.VendorID}).Info("Product deleted")
	return nil
}

// FindByIDs loads live products by id on the given handle, which may be another
// component's open transaction. Missing ids are simply absent from the map.
func FindByIDs(tx *gorm.DB, ids []string) (map[string]domain.Product, error) {
	var products []domain.Product
	if err := tx.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}
