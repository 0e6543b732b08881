// Package products manages the food catalog: global entries shared by all
// users and per-user custom entries.
package products

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mbodji/macrolog/internal/domain/errvalues"
	"github.com/mbodji/macrolog/internal/domain/models"
	"github.com/mbodji/macrolog/pkg/clients/openfoodfacts"
)

// Repository is the catalog persistence contract.
type Repository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	ExistsByName(ctx context.Context, name string, isCustom bool, createdBy *primitive.ObjectID, excludeID *primitive.ObjectID) (bool, error)
	ListVisible(ctx context.Context, userID primitive.ObjectID) ([]models.Product, error)
	Insert(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CreateInput carries the fields of a new catalog entry.
type CreateInput struct {
	Name         string                   `json:"name"`
	ValuesPer100 models.NutritionalValues `json:"valuesPer100g"`
	Unit         models.Unit              `json:"unit"`
}

// ProfilePatch is a partial update of a product's reference values.
type ProfilePatch struct {
	Calories *float64 `json:"calories,omitempty"`
	Protein  *float64 `json:"protein,omitempty"`
	Carbs    *float64 `json:"carbs,omitempty"`
	Fat      *float64 `json:"fat,omitempty"`
}

// UpdateInput carries the editable fields of an existing product.
type UpdateInput struct {
	Name   *string      `json:"name,omitempty"`
	Values *ProfilePatch `json:"valuesPer100g,omitempty"`
	Unit   *models.Unit `json:"unit,omitempty"`
}

// Service implements catalog operations with ownership rules.
type Service struct {
	repo    Repository
	catalog openfoodfacts.Client
	logger  *zap.Logger
}

// NewService wires a products service. catalog may be nil, which disables
// barcode import.
func NewService(repo Repository, catalog openfoodfacts.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, catalog: catalog, logger: logger}
}

// FindByID resolves one product.
func (s *Service) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns global products plus the caller's custom ones, name-sorted.
func (s *Service) List(ctx context.Context, userID primitive.ObjectID) ([]models.Product, error) {
	return s.repo.ListVisible(ctx, userID)
}

// Create stores a new product. Regular requests create custom entries owned
// by the caller; global requests (admin surface) create shared entries. Name
// collisions within the same scope are rejected.
func (s *Service) Create(ctx context.Context, input CreateInput, userID primitive.ObjectID, isGlobal bool) (*models.Product, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: product name is required", errvalues.ErrInvalidInput)
	}
	if err := validateProfile(input.ValuesPer100); err != nil {
		return nil, err
	}

	unit := input.Unit
	if unit == "" {
		unit = models.UnitGram
	}
	if !unit.Valid() {
		return nil, fmt.Errorf("%w: unknown unit %q", errvalues.ErrInvalidInput, unit)
	}

	isCustom := !isGlobal
	var creator *primitive.ObjectID
	if isCustom {
		creator = &userID
	}

	exists, err := s.repo.ExistsByName(ctx, input.Name, isCustom, creator, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errvalues.ErrProductExists
	}

	product := &models.Product{
		Name:         input.Name,
		IsCustom:     isCustom,
		CreatedBy:    &userID,
		ValuesPer100: input.ValuesPer100,
		Unit:         unit,
	}
	if err := s.repo.Insert(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update edits a product owned by the requester (admins may edit anything).
func (s *Service) Update(ctx context.Context, productID primitive.ObjectID, input UpdateInput, requester *models.User) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if !requester.IsAdmin() && !isCreator(product, requester.ID) {
		return nil, errvalues.ErrNotOwner
	}

	if input.Name != nil && *input.Name != product.Name {
		exists, err := s.repo.ExistsByName(ctx, *input.Name, product.IsCustom, product.CreatedBy, &product.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errvalues.ErrProductExists
		}
		product.Name = *input.Name
	}

	if input.Values != nil {
		applyPatch(&product.ValuesPer100, input.Values)
		if err := validateProfile(product.ValuesPer100); err != nil {
			return nil, err
		}
	}

	if input.Unit != nil {
		if !input.Unit.Valid() {
			return nil, fmt.Errorf("%w: unknown unit %q", errvalues.ErrInvalidInput, *input.Unit)
		}
		product.Unit = *input.Unit
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product. Core system entries without a creator can only
// be removed by admins.
func (s *Service) Delete(ctx context.Context, productID primitive.ObjectID, requester *models.User) error {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	if !requester.IsAdmin() && !isCreator(product, requester.ID) {
		return errvalues.ErrNotOwner
	}

	return s.repo.Delete(ctx, productID)
}

// ImportByBarcode fetches a food from the external catalog and stores it as
// a custom product owned by the caller.
func (s *Service) ImportByBarcode(ctx context.Context, barcode string, userID primitive.ObjectID) (*models.Product, error) {
	if s.catalog == nil {
		return nil, fmt.Errorf("%w: food catalog import is not configured", errvalues.ErrInvalidInput)
	}
	if barcode == "" {
		return nil, fmt.Errorf("%w: barcode is required", errvalues.ErrInvalidInput)
	}

	food, err := s.catalog.FetchByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}

	s.logger.Info("imported product from catalog",
		zap.String("barcode", barcode),
		zap.String("name", food.Name))

	return s.Create(ctx, CreateInput{
		Name:         food.Name,
		ValuesPer100: food.Per100,
		Unit:         food.Unit,
	}, userID, false)
}

func validateProfile(v models.NutritionalValues) error {
	if v.Calories < 0 || v.Protein < 0 || v.Carbs < 0 || v.Fat < 0 {
		return fmt.Errorf("%w: nutritional values must be non-negative", errvalues.ErrInvalidInput)
	}
	return nil
}

func applyPatch(values *models.NutritionalValues, patch *ProfilePatch) {
	if patch.Calories != nil {
		values.Calories = *patch.Calories
	}
	if patch.Protein != nil {
		values.Protein = *patch.Protein
	}
	if patch.Carbs != nil {
		values.Carbs = *patch.Carbs
	}
	if patch.Fat != nil {
		values.Fat = *patch.Fat
	}
}

func isCreator(product *models.Product, userID primitive.ObjectID) bool {
	return product.CreatedBy != nil && *product.CreatedBy == userID
}
