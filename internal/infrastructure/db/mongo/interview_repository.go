package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openhire/recruitment-api/internal/core/domain"
)

const collectionInterviews = "interviews"

type InterviewRepository struct {
	col *mongo.Collection
}

func NewInterviewRepository(db *mongo.Database) *InterviewRepository {
	return &InterviewRepository{col: db.Collection(collectionInterviews)}
}

func (r *InterviewRepository) Create(ctx context.Context, i *domain.Interview) (*domain.Interview, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	i.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (r *InterviewRepository) FindByID(ctx context.Context, id string) (*domain.Interview, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var i domain.Interview
	if err := r.col.FindOne(ctx, withNotDeleted(bson.M{"_id": id})).Decode(&i); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInterviewNotFound
		}
		return nil, err
	}
	return &i, nil
}

func (r *InterviewRepository) Update(ctx context.Context, id string, fields map[string]any) (*domain.Interview, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var i domain.Interview
	err := r.col.FindOneAndUpdate(ctx, withNotDeleted(bson.M{"_id": id}), bson.M{"$set": set}, opts).Decode(&i)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInterviewNotFound
		}
		return nil, err
	}
	return &i, nil
}

// EnsureIndexes creates necessary indexes on the interviews collection.
func (r *InterviewRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "application_id", Value: 1}}},
		{Keys: bson.D{{Key: "scheduled_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
