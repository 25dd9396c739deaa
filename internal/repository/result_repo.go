package repository

import (
	"careerai/internal/model"
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ResultRepo archives every successful submission
type ResultRepo interface {
	Archive(ctx context.Context, record *model.ResultRecord) error
	ListByUser(ctx context.Context, userID string, limit int64) ([]*model.ResultRecord, error)
}

type resultRepo struct {
	collection *mongo.Collection
}

// NewResultRepo creates a new result history repository
func NewResultRepo(db *mongo.Database) ResultRepo {
	return &resultRepo{
		collection: db.Collection("ikigai_results"),
	}
}

func (r *resultRepo) Archive(ctx context.Context, record *model.ResultRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	_, err := r.collection.InsertOne(ctx, record)
	return err
}

// ListByUser returns the newest records first
func (r *resultRepo) ListByUser(ctx context.Context, userID string, limit int64) ([]*model.ResultRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []*model.ResultRecord{}
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
