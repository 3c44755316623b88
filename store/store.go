// Package store persists the pieces of client state that should
// survive an app restart: the cart snapshot and the session token.
// It is a cache, not a source of truth; the backend owns orders and
// the catalog.
package store

import (
	"errors"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kiranamart/storefront-client/models"
)

// CartItem is a denormalized cart line: the product fields are
// snapshotted so the cart renders even before the catalog has loaded.
type CartItem struct {
	ID           uint   `gorm:"primaryKey"`
	ProductID    string `gorm:"index"`
	ProductName  string
	ProductPrice float64
	ProductMRP   float64
	ProductUnit  string
	ProductImage string
	ProductStock int
	CategoryID   string
	Quantity     int
	AddedAt      time.Time
}

type Setting struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

const sessionTokenKey = "session_token"

type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the sqlite file and migrates the schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&CartItem{}, &Setting{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// SaveCart replaces the persisted snapshot with the current cart.
func (s *Store) SaveCart(lines []models.CartLine) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&CartItem{}).Error; err != nil {
			return err
		}
		for _, line := range lines {
			item := CartItem{
				ProductID:    line.Product.ID,
				ProductName:  line.Product.Name,
				ProductPrice: line.Product.Price,
				ProductMRP:   line.Product.MRP,
				ProductUnit:  line.Product.Unit,
				ProductImage: line.Product.ImageURL,
				ProductStock: line.Product.Stock,
				CategoryID:   line.Product.CategoryID,
				Quantity:     line.Quantity,
				AddedAt:      time.Now(),
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadCart returns the persisted snapshot in insertion order.
func (s *Store) LoadCart() ([]models.CartLine, error) {
	var items []CartItem
	if err := s.db.Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	lines := make([]models.CartLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, models.CartLine{
			Product: models.Product{
				ID:         item.ProductID,
				Name:       item.ProductName,
				Price:      item.ProductPrice,
				MRP:        item.ProductMRP,
				Unit:       item.ProductUnit,
				ImageURL:   item.ProductImage,
				Stock:      item.ProductStock,
				CategoryID: item.CategoryID,
			},
			Quantity: item.Quantity,
		})
	}
	return lines, nil
}

// ClearCart drops the persisted snapshot.
func (s *Store) ClearCart() error {
	return s.db.Where("1 = 1").Delete(&CartItem{}).Error
}

// SaveSessionToken upserts the stored session token.
func (s *Store) SaveSessionToken(token string) error {
	return s.db.Save(&Setting{Key: sessionTokenKey, Value: token}).Error
}

// LoadSessionToken returns the stored token, empty string when none
// has been saved.
func (s *Store) LoadSessionToken() (string, error) {
	var setting Setting
	err := s.db.First(&setting, "key = ?", sessionTokenKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

// ClearSessionToken removes the stored token.
func (s *Store) ClearSessionToken() error {
	return s.db.Delete(&Setting{}, "key = ?", sessionTokenKey).Error
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
