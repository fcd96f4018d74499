package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Story is a published success story shown on the landing page.
type Story struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentName     string             `bson:"studentName" json:"studentName"`
	StudentImage    string             `bson:"studentImage,omitempty" json:"studentImage,omitempty"`
	ScholarshipName string             `bson:"scholarshipName" json:"scholarshipName"`
	UniversityName  string             `bson:"universityName" json:"universityName"`
	Story           string             `bson:"story" json:"story"`
	Date            time.Time          `bson:"date" json:"date"`
}
