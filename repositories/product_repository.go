// repositories/product_repository.go
package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dkadris/dkadris_backend/config"
	"github.com/dkadris/dkadris_backend/models"
)

// ProductRepository is the persistence store for the catalog
type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Client) *ProductRepository {
	return &ProductRepository{
		collection: config.GetCollection(db, "products"),
	}
}

// List returns products, optionally restricted to the public catalog
func (r *ProductRepository) List(ctx context.Context, onlyWhitelisted bool) ([]models.Product, error) {
	filter := bson.M{}
	if onlyWhitelisted {
		filter["whitelisted"] = true
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	for cursor.Next(ctx) {
		var p models.Product
		if err := cursor.Decode(&p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, cursor.Err()
}

// FindByID loads a single product
func (r *ProductRepository) FindByID(ctx context.Context, id string) (models.Product, error) {
	var p models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	return p, err
}

// Insert stores a new product
func (r *ProductRepository) Insert(ctx context.Context, p models.Product) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, p)
	return err
}

// Update replaces the mutable fields of an existing product
func (r *ProductRepository) Update(ctx context.Context, p models.Product) error {
	filter := bson.M{"_id": p.ID}
	update := bson.M{"$set": bson.M{
		"name":        p.Name,
		"type":        p.Type,
		"price":       p.Price,
		"image":       p.Image,
		"description": p.Description,
		"whitelisted": p.Whitelisted,
		"updatedAt":   time.Now(),
	}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ToggleWhitelist flips catalog visibility and returns the new value
func (r *ProductRepository) ToggleWhitelist(ctx context.Context, id string) (bool, error) {
	p, err := r.FindByID(ctx, id)
	if err != nil {
		return false, err
	}

	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{
		"whitelisted": !p.Whitelisted,
		"updatedAt":   time.Now(),
	}}
	if _, err := r.collection.UpdateOne(ctx, filter, update); err != nil {
		return false, err
	}
	return !p.Whitelisted, nil
}

// Delete removes a product from the catalog
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
