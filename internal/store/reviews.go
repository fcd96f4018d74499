package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/example/scholarstream/internal/models"
)

// ReviewRepo persists scholarship reviews.
type ReviewRepo struct {
	coll *mongo.Collection
}

// NewReviewRepo constructs ReviewRepo.
func NewReviewRepo(db *mongo.Database) *ReviewRepo {
	return &ReviewRepo{coll: db.Collection("reviews")}
}

// ByScholarship returns reviews of one scholarship, newest first.
func (r *ReviewRepo) ByScholarship(ctx context.Context, scholarshipID string) ([]models.Review, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"scholarshipId": scholarshipID},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}
	return reviews, nil
}

// ByReviewer returns reviews written by the given email.
func (r *ReviewRepo) ByReviewer(ctx context.Context, email string) ([]models.Review, error) {
	filter := bson.M{}
	if email != "" {
		filter["reviewerEmail"] = email
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}
	return reviews, nil
}

// Insert stores a new review and fills in its generated ID.
func (r *ReviewRepo) Insert(ctx context.Context, review *models.Review) error {
	res, err := r.coll.InsertOne(ctx, review)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		review.ID = id
	}
	return nil
}

// Update sets the rating and comment on a review by hex ID.
func (r *ReviewRepo) Update(ctx context.Context, id string, rating float64, comment string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, ErrInvalidID
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"rating":  rating,
		"comment": comment,
	}})
	if err != nil {
		return 0, fmt.Errorf("update review: %w", err)
	}
	return res.ModifiedCount, nil
}

// Delete removes a review by hex ID.
func (r *ReviewRepo) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, ErrInvalidID
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("delete review: %w", err)
	}
	return res.DeletedCount, nil
}
