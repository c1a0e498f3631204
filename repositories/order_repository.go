// repositories/order_repository.go
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

// OrderRepository is the persistence store for orders. Orders are append-only
// from checkout; only the status field moves afterwards.
type OrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Client) *OrderRepository {
	return &OrderRepository{
		collection: config.GetCollection(db, "orders"),
	}
}

// GetOrders loads the full order set in insertion order, which is what the
// ledger engine's tie-break rules are defined over.
func (r *OrderRepository) GetOrders(ctx context.Context) ([]models.Order, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	for cursor.Next(ctx) {
		var o models.Order
		if err := cursor.Decode(&o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, cursor.Err()
}

// FindByID loads a single order
func (r *OrderRepository) FindByID(ctx context.Context, id string) (models.Order, error) {
	var o models.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	return o, err
}

// Insert stores a new order from checkout
func (r *OrderRepository) Insert(ctx context.Context, o models.Order) error {
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, o)
	return err
}

// UpdateStatus performs an admin status transition
func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now(),
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
