package services

import (
	"fmt"

	"github.com/AkshayGangurde12/farm-management-system/internal/db"
	"github.com/AkshayGangurde12/farm-management-system/internal/models"

	"github.com/rs/zerolog"
)

type ProductService struct {
	db     *db.DB
	logger zerolog.Logger
}

func NewProductService(database *db.DB, logger zerolog.Logger) *ProductService {
	return &ProductService{
		db:     database,
		logger: logger,
	}
}

// Create lists a product under owner. The owner's username and email are
// copied into the product.
func (s *ProductService) Create(owner *models.User, req *models.ProductRequest) (*models.Product, error) {
	if owner == nil {
		return nil, ErrNotAuthenticated
	}

	var product models.Product
	err := s.db.Update(func(tx *db.Tx) error {
		product = tx.Products.Insert(func(id int) models.Product {
			return models.Product{
				ID:            id,
				OwnerUsername: owner.Username,
				OwnerEmail:    owner.Email,
				Name:          req.Name,
				Description:   req.Description,
				Price:         req.Price,
				Category:      req.Category,
				Quantity:      req.Quantity,
				BasePrice:     req.BasePrice,
				Image:         req.Image,
				Available:     req.Available,
				CreatedAt:     tx.Now(),
			}
		})
		recordActivity(tx, models.EntityProduct, product.ID, models.ActionProductAdded, product.Name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.logger.Info().
		Int("product_id", product.ID).
		Str("owner_email", product.OwnerEmail).
		Str("name", product.Name).
		Msg("Product created")
	return &product, nil
}

func (s *ProductService) List() []models.Product {
	var products []models.Product
	_ = s.db.View(func(tx *db.Tx) error {
		products = tx.Products.All()
		return nil
	})
	return products
}

func (s *ProductService) ListByOwnerEmail(email string) []models.Product {
	var products []models.Product
	_ = s.db.View(func(tx *db.Tx) error {
		products = tx.Products.Filter(func(p models.Product) bool { return p.OwnerEmail == email })
		return nil
	})
	return products
}

// ToggleAvailability flips Available on a product owned by requester. A
// missing product and someone else's product yield the same error.
func (s *ProductService) ToggleAvailability(productID int, requester *models.User) (*models.Product, error) {
	if requester == nil {
		return nil, ErrNotAuthenticated
	}

	var product models.Product
	err := s.db.Update(func(tx *db.Tx) error {
		p, ok := tx.Products.Get(productID)
		if !ok || p.OwnerEmail != requester.Email {
			return ErrNotFoundOrForbidden
		}
		p.Available = !p.Available
		tx.Products.Put(p.ID, p)
		product = p
		recordActivity(tx, models.EntityProduct, p.ID, models.ActionProductToggled, availabilityLabel(p.Available))
		return nil
	})
	if err != nil {
		s.logger.Warn().Int("product_id", productID).Int("user_id", requester.ID).Msg("Availability toggle refused")
		return nil, fmt.Errorf("toggle product %d: %w", productID, err)
	}

	s.logger.Info().Int("product_id", product.ID).Bool("available", product.Available).Msg("Product availability changed")
	return &product, nil
}

func availabilityLabel(available bool) string {
	if available {
		return "available"
	}
	return "unavailable"
}
