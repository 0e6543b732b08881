package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mbodji/macrolog/internal/domain/errvalues"
	"github.com/mbodji/macrolog/internal/domain/models"
)

// ProductRepository stores the food catalog.
type ProductRepository struct {
	coll *mongo.Collection
}

// NewProductRepository builds the products repository.
func NewProductRepository(c *Client) *ProductRepository {
	return &ProductRepository{coll: c.db.Collection("products")}
}

// FindByID loads one product. Returns errvalues.ErrProductNotFound when the
// id does not exist.
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errvalues.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	return &product, nil
}

// ExistsByName reports whether a product with the given name already exists
// in the requested scope. createdBy narrows to one creator, excludeID lets
// update checks ignore the product being edited.
func (r *ProductRepository) ExistsByName(ctx context.Context, name string, isCustom bool, createdBy *primitive.ObjectID, excludeID *primitive.ObjectID) (bool, error) {
	filter := bson.M{"name": name, "isCustom": isCustom}
	if createdBy != nil {
		filter["createdBy"] = *createdBy
	}
	if excludeID != nil {
		filter["_id"] = bson.M{"$ne": *excludeID}
	}

	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("check product name: %w", err)
	}
	return count > 0, nil
}

// ListVisible returns every global product plus the user's own custom ones,
// sorted by name.
func (r *ProductRepository) ListVisible(ctx context.Context, userID primitive.ObjectID) ([]models.Product, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"isCustom": false},
		bson.M{"isCustom": true, "createdBy": userID},
	}}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

// Insert stores a new product and backfills its generated id.
func (r *ProductRepository) Insert(ctx context.Context, product *models.Product) error {
	res, err := r.coll.InsertOne(ctx, product)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = id
	}
	return nil
}

// Update replaces the stored product document.
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return errvalues.ErrProductNotFound
	}
	return nil
}

// Delete removes a product by id.
func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return errvalues.ErrProductNotFound
	}
	return nil
}
