package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a user's rating of a scholarship.
type Review struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ScholarshipID  string             `bson:"scholarshipId" json:"scholarshipId"`
	ScholarshipName string            `bson:"scholarshipName,omitempty" json:"scholarshipName,omitempty"`
	UniversityName string             `bson:"universityName,omitempty" json:"universityName,omitempty"`
	ReviewerName   string             `bson:"reviewerName" json:"reviewerName"`
	ReviewerEmail  string             `bson:"reviewerEmail" json:"reviewerEmail"`
	ReviewerImage  string             `bson:"reviewerImage,omitempty" json:"reviewerImage,omitempty"`
	Rating         float64            `bson:"rating" json:"rating"`
	Comment        string             `bson:"comment" json:"comment"`
	Date           time.Time          `bson:"date" json:"date"`
}
