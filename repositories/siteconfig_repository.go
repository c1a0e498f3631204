// repositories/siteconfig_repository.go
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

// SiteConfigRepository persists the single storefront-content document
type SiteConfigRepository struct {
	collection *mongo.Collection
}

func NewSiteConfigRepository(db *mongo.Client) *SiteConfigRepository {
	return &SiteConfigRepository{
		collection: config.GetCollection(db, "siteconfig"),
	}
}

// Get loads the site configuration, seeding the default on first boot
func (r *SiteConfigRepository) Get(ctx context.Context) (models.SiteConfig, error) {
	var cfg models.SiteConfig
	err := r.collection.FindOne(ctx, bson.M{"_id": "site"}).Decode(&cfg)
	if err == mongo.ErrNoDocuments {
		cfg = models.DefaultSiteConfig()
		cfg.UpdatedAt = time.Now()
		if _, insErr := r.collection.InsertOne(ctx, cfg); insErr != nil {
			return cfg, insErr
		}
		return cfg, nil
	}
	return cfg, err
}

// Set publishes a new site configuration
func (r *SiteConfigRepository) Set(ctx context.Context, cfg models.SiteConfig) error {
	cfg.ID = "site"
	cfg.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": "site"}, cfg, options.Replace().SetUpsert(true))
	return err
}
