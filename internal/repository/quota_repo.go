package repository

import (
	"context"
	"errors"
	"realitycheck/internal/quota"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// QuotaRepo is a quota.Limiter that keeps one MongoDB document per window
type QuotaRepo interface {
	Check(ctx context.Context, key string) (bool, error)
	Record(ctx context.Context, key string) error
	EnsureIndexes(ctx context.Context) error
}

type quotaDoc struct {
	Key     string    `bson:"_id"`
	Policy  string    `bson:"policy"`
	Count   int       `bson:"count"`
	ResetAt time.Time `bson:"resetAt"`
}

type quotaRepo struct {
	collection *mongo.Collection
	policy     quota.Policy
	now        func() time.Time
}

// NewQuotaRepo creates a new quota repository
func NewQuotaRepo(db *mongo.Database, policy quota.Policy) QuotaRepo {
	return &quotaRepo{
		collection: db.Collection("quota_windows"),
		policy:     policy,
		now:        time.Now,
	}
}

func (r *quotaRepo) id(key string) string {
	return r.policy.Name + ":" + key
}

// EnsureIndexes lets MongoDB expire finished windows on its own
func (r *quotaRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "resetAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	return err
}

func (r *quotaRepo) Check(ctx context.Context, key string) (bool, error) {
	var doc quotaDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": r.id(key)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	if !r.now().Before(doc.ResetAt) {
		return true, nil
	}
	return doc.Count < r.policy.Limit, nil
}

// Record opens a window or increments the live one in a single upsert. The
// pipeline update evaluates both fields against the stored resetAt, so
// concurrent first records cannot overwrite each other's count.
func (r *quotaRepo) Record(ctx context.Context, key string) error {
	now := r.now()
	live := bson.D{{Key: "$gt", Value: bson.A{"$resetAt", now}}}

	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "policy", Value: r.policy.Name},
			{Key: "count", Value: bson.D{{Key: "$cond", Value: bson.A{
				live, bson.D{{Key: "$add", Value: bson.A{"$count", 1}}}, 1,
			}}}},
			{Key: "resetAt", Value: bson.D{{Key: "$cond", Value: bson.A{
				live, "$resetAt", now.Add(r.policy.Window),
			}}}},
		}}},
	}
	opts := options.Update().SetUpsert(true)

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": r.id(key)}, update, opts)
	if mongo.IsDuplicateKeyError(err) {
		// Lost an upsert race on _id; the document exists now
		_, err = r.collection.UpdateOne(ctx, bson.M{"_id": r.id(key)}, update, opts)
	}
	return err
}
