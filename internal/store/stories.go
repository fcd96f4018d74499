package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/example/scholarstream/internal/models"
)

// StoryRepo reads published success stories.
type StoryRepo struct {
	coll *mongo.Collection
}

// NewStoryRepo constructs StoryRepo.
func NewStoryRepo(db *mongo.Database) *StoryRepo {
	return &StoryRepo{coll: db.Collection("stories")}
}

// List returns all success stories.
func (r *StoryRepo) List(ctx context.Context) ([]models.Story, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}

	stories := []models.Story{}
	if err := cursor.All(ctx, &stories); err != nil {
		return nil, fmt.Errorf("decode stories: %w", err)
	}
	return stories, nil
}
