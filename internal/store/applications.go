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

// ApplicationRepo persists scholarship applications.
type ApplicationRepo struct {
	coll *mongo.Collection
}

// NewApplicationRepo constructs ApplicationRepo.
func NewApplicationRepo(db *mongo.Database) *ApplicationRepo {
	return &ApplicationRepo{coll: db.Collection("applications")}
}

// Insert stores a new application and fills in its generated ID.
func (r *ApplicationRepo) Insert(ctx context.Context, app *models.Application) error {
	res, err := r.coll.InsertOne(ctx, app)
	if err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		app.ID = id
	}
	return nil
}

// List returns applications, optionally filtered by applicant email, newest
// first.
func (r *ApplicationRepo) List(ctx context.Context, userEmail string) ([]models.Application, error) {
	filter := bson.M{}
	if userEmail != "" {
		filter["userEmail"] = userEmail
	}

	cursor, err := r.coll.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "applicationDate", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}

	apps := []models.Application{}
	if err := cursor.All(ctx, &apps); err != nil {
		return nil, fmt.Errorf("decode applications: %w", err)
	}
	return apps, nil
}

// Get returns a single application by its hex ID.
func (r *ApplicationRepo) Get(ctx context.Context, id string) (*models.Application, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var app models.Application
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&app); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find application: %w", err)
	}
	return &app, nil
}

// SetFeedback records moderator feedback on an application.
func (r *ApplicationRepo) SetFeedback(ctx context.Context, id, feedback string) (int64, error) {
	return r.setFields(ctx, id, bson.M{"feedback": feedback})
}

// SetStatus transitions the moderation status of an application.
func (r *ApplicationRepo) SetStatus(ctx context.Context, id, status string) (int64, error) {
	return r.setFields(ctx, id, bson.M{"applicationStatus": status})
}

// MarkPaid sets the paymentStatus to paid and attaches the tracking ID.
func (r *ApplicationRepo) MarkPaid(ctx context.Context, id, trackingID string) (int64, error) {
	return r.setFields(ctx, id, bson.M{
		"paymentStatus": models.PaymentStatusPaid,
		"trackingId":    trackingID,
	})
}

// MarkPaymentRejected sets the paymentStatus to reject. A missing application
// is a zero-match update, not an error.
func (r *ApplicationRepo) MarkPaymentRejected(ctx context.Context, id string) (int64, error) {
	return r.setFields(ctx, id, bson.M{"paymentStatus": models.PaymentStatusReject})
}

// Delete removes an application by its hex ID.
func (r *ApplicationRepo) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, ErrInvalidID
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("delete application: %w", err)
	}
	return res.DeletedCount, nil
}

// TotalFees sums applicationFees across all applications. Fees are stored as
// strings on the documents, so the pipeline converts before grouping.
func (r *ApplicationRepo) TotalFees(ctx context.Context) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$addFields", Value: bson.M{
			"applicationFees": bson.M{"$toInt": "$applicationFees"},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":       nil,
			"totalFees": bson.M{"$sum": "$applicationFees"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("aggregate fees: %w", err)
	}

	var results []struct {
		TotalFees int64 `bson:"totalFees"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("decode fees: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].TotalFees, nil
}

// CountByScholarship groups applications by scholarship name.
func (r *ApplicationRepo) CountByScholarship(ctx context.Context) ([]GroupCount, error) {
	return groupCount(ctx, r.coll, "$scholarshipName")
}

func (r *ApplicationRepo) setFields(ctx context.Context, id string, fields bson.M) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, ErrInvalidID
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return 0, fmt.Errorf("update application: %w", err)
	}
	return res.ModifiedCount, nil
}
