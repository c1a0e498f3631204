// repositories/affiliate_repository.go
package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dkadris/dkadris_backend/config"
	"github.com/dkadris/dkadris_backend/ledger"
	"github.com/dkadris/dkadris_backend/models"
)

// AffiliateRepository is the persistence store for affiliate records,
// exposed as the mapping-by-email collection the ledger engine consumes.
type AffiliateRepository struct {
	collection *mongo.Collection
}

func NewAffiliateRepository(db *mongo.Client) *AffiliateRepository {
	return &AffiliateRepository{
		collection: config.GetCollection(db, "affiliates"),
	}
}

// GetAffiliates loads the full collection keyed by lowercased email
func (r *AffiliateRepository) GetAffiliates(ctx context.Context) (map[string]models.Affiliate, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	affiliates := make(map[string]models.Affiliate)
	for cursor.Next(ctx) {
		var a models.Affiliate
		if err := cursor.Decode(&a); err != nil {
			return nil, err
		}
		affiliates[strings.ToLower(a.Email)] = a
	}
	return affiliates, cursor.Err()
}

// SetAffiliates writes back every affiliate in the mapping, upserting by email
func (r *AffiliateRepository) SetAffiliates(ctx context.Context, affiliates map[string]models.Affiliate) error {
	for email, a := range affiliates {
		a.UpdatedAt = time.Now()
		filter := bson.M{"email": email}
		update := bson.M{"$set": a}
		if _, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			return err
		}
	}
	return nil
}

// FindByEmail loads a single affiliate; mongo.ErrNoDocuments when absent
func (r *AffiliateRepository) FindByEmail(ctx context.Context, email string) (models.Affiliate, error) {
	var a models.Affiliate
	err := r.collection.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).Decode(&a)
	return a, err
}

// FindByCode resolves a referral code to its owner
func (r *AffiliateRepository) FindByCode(ctx context.Context, code string) (models.Affiliate, error) {
	var a models.Affiliate
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&a)
	return a, err
}

// Insert stores a new affiliate. A duplicate email surfaces as the ledger's
// DuplicateAffiliateError so the signup flow can report it uniformly; a
// duplicate referral code means the generator's uniqueness loop failed and
// is surfaced as its own error, never as a duplicate account.
func (r *AffiliateRepository) Insert(ctx context.Context, a models.Affiliate) error {
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.ReferredAffiliates == nil {
		a.ReferredAffiliates = []models.ReferredAffiliate{}
	}

	_, err := r.collection.InsertOne(ctx, a)
	return classifyDuplicateKey(err, a.Email, a.Code)
}

// classifyDuplicateKey maps a unique-index violation to the right domain
// error by inspecting which index rejected the write.
func classifyDuplicateKey(err error, email, code string) error {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return err
	}
	if strings.Contains(err.Error(), "code_1") {
		return fmt.Errorf("referral code %q already taken at insert, generator uniqueness check failed: %w", code, err)
	}
	return &ledger.DuplicateAffiliateError{Email: email}
}

// AppendReferral pushes a referred-partner entry onto the referrer's network
// in a single document update, so racing registrations cannot lose entries.
func (r *AffiliateRepository) AppendReferral(ctx context.Context, referrerCode string, referred models.ReferredAffiliate) error {
	filter := bson.M{"code": referrerCode}
	update := bson.M{
		"$push": bson.M{"referredAffiliates": referred},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

// SetVerification updates the verification state for an affiliate
func (r *AffiliateRepository) SetVerification(ctx context.Context, email string, verified bool, code string) error {
	filter := bson.M{"email": strings.ToLower(strings.TrimSpace(email))}
	update := bson.M{"$set": bson.M{
		"verified":         verified,
		"verificationCode": code,
		"updatedAt":        time.Now(),
	}}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

// ExistingCodes returns the set of referral codes already in use, feeding the
// generator's uniqueness loop.
func (r *AffiliateRepository) ExistingCodes(ctx context.Context) (map[string]bool, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"code": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	codes := make(map[string]bool)
	for cursor.Next(ctx) {
		var doc struct {
			Code string `bson:"code"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		codes[doc.Code] = true
	}
	return codes, cursor.Err()
}
