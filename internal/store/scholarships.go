package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/example/scholarstream/internal/models"
)

// ScholarshipRepo persists scholarship listings.
type ScholarshipRepo struct {
	coll *mongo.Collection
}

// NewScholarshipRepo constructs ScholarshipRepo.
func NewScholarshipRepo(db *mongo.Database) *ScholarshipRepo {
	return &ScholarshipRepo{coll: db.Collection("scholarships")}
}

// SearchParams drives the paginated scholarship search.
type SearchParams struct {
	Query     string
	SortField string
	Ascending bool
	Skip      int64
	Limit     int64
}

// List returns scholarships, optionally filtered by the posting admin email.
func (r *ScholarshipRepo) List(ctx context.Context, email string) ([]models.Scholarship, error) {
	filter := bson.M{}
	if email != "" {
		filter["email"] = email
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list scholarships: %w", err)
	}

	scholarships := []models.Scholarship{}
	if err := cursor.All(ctx, &scholarships); err != nil {
		return nil, fmt.Errorf("decode scholarships: %w", err)
	}
	return scholarships, nil
}

// Latest returns the n most recently created scholarships.
func (r *ScholarshipRepo) Latest(ctx context.Context, n int64) ([]models.Scholarship, error) {
	cursor, err := r.coll.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(n))
	if err != nil {
		return nil, fmt.Errorf("list latest scholarships: %w", err)
	}

	scholarships := []models.Scholarship{}
	if err := cursor.All(ctx, &scholarships); err != nil {
		return nil, fmt.Errorf("decode scholarships: %w", err)
	}
	return scholarships, nil
}

// Get returns a single scholarship by its hex ID.
func (r *ScholarshipRepo) Get(ctx context.Context, id string) (*models.Scholarship, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var scholarship models.Scholarship
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&scholarship); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find scholarship: %w", err)
	}
	return &scholarship, nil
}

// Search runs a case-insensitive text match over name, university and degree
// with sort and pagination, returning matching rows and the total match count.
func (r *ScholarshipRepo) Search(ctx context.Context, params SearchParams) ([]models.Scholarship, int64, error) {
	filter := bson.M{}
	if params.Query != "" {
		regex := primitive.Regex{Pattern: params.Query, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"scholarshipName": regex},
			bson.M{"universityName": regex},
			bson.M{"degree": regex},
		}
	}

	order := -1
	if params.Ascending {
		order = 1
	}
	sortField := params.SortField
	if sortField == "" {
		sortField = "postDate"
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: sortField, Value: order}}).
		SetSkip(params.Skip).
		SetLimit(params.Limit))
	if err != nil {
		return nil, 0, fmt.Errorf("search scholarships: %w", err)
	}

	scholarships := []models.Scholarship{}
	if err := cursor.All(ctx, &scholarships); err != nil {
		return nil, 0, fmt.Errorf("decode scholarships: %w", err)
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count scholarships: %w", err)
	}

	return scholarships, total, nil
}

// Insert stores a new scholarship and fills in its generated ID.
func (r *ScholarshipRepo) Insert(ctx context.Context, scholarship *models.Scholarship) error {
	res, err := r.coll.InsertOne(ctx, scholarship)
	if err != nil {
		return fmt.Errorf("insert scholarship: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		scholarship.ID = id
	}
	return nil
}

// Update applies the given fields to a scholarship by hex ID.
func (r *ScholarshipRepo) Update(ctx context.Context, id string, fields map[string]any) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, ErrInvalidID
	}

	delete(fields, "_id")
	delete(fields, "id")

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return 0, fmt.Errorf("update scholarship: %w", err)
	}
	return res.ModifiedCount, nil
}

// Delete removes a scholarship by hex ID.
func (r *ScholarshipRepo) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, ErrInvalidID
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("delete scholarship: %w", err)
	}
	return res.DeletedCount, nil
}

// Count returns the total number of scholarships.
func (r *ScholarshipRepo) Count(ctx context.Context) (int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count scholarships: %w", err)
	}
	return total, nil
}

// CountByUniversity groups scholarships by university name.
func (r *ScholarshipRepo) CountByUniversity(ctx context.Context) ([]GroupCount, error) {
	return groupCount(ctx, r.coll, "$universityName")
}
