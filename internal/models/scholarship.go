package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Scholarship is a listing posted by an admin.
type Scholarship struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ScholarshipName     string             `bson:"scholarshipName" json:"scholarshipName"`
	UniversityName      string             `bson:"universityName" json:"universityName"`
	UniversityCountry   string             `bson:"universityCountry,omitempty" json:"universityCountry,omitempty"`
	UniversityCity      string             `bson:"universityCity,omitempty" json:"universityCity,omitempty"`
	UniversityImage     string             `bson:"universityImage,omitempty" json:"universityImage,omitempty"`
	SubjectCategory     string             `bson:"subjectCategory,omitempty" json:"subjectCategory,omitempty"`
	ScholarshipCategory string             `bson:"scholarshipCategory,omitempty" json:"scholarshipCategory,omitempty"`
	Degree              string             `bson:"degree,omitempty" json:"degree,omitempty"`
	TuitionFees         string             `bson:"tuitionFees,omitempty" json:"tuitionFees,omitempty"`
	ApplicationFees     string             `bson:"applicationFees" json:"applicationFees"`
	ServiceCharge       string             `bson:"serviceCharge,omitempty" json:"serviceCharge,omitempty"`
	ApplicationDeadline string             `bson:"applicationDeadline,omitempty" json:"applicationDeadline,omitempty"`
	PostDate            string             `bson:"postDate,omitempty" json:"postDate,omitempty"`
	Email               string             `bson:"email,omitempty" json:"email,omitempty"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
}
