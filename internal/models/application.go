package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Application status values set by moderators.
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

// Payment status values set by the payment workflow.
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
	PaymentStatusReject = "reject"
)

// Application is a user's submission against a scholarship. Created with
// pending/unpaid defaults; moderators mutate status and feedback, the payment
// workflow mutates paymentStatus and trackingId.
type Application struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ScholarshipID     string             `bson:"scholarshipId,omitempty" json:"scholarshipId,omitempty"`
	ScholarshipName   string             `bson:"scholarshipName" json:"scholarshipName"`
	UniversityName    string             `bson:"universityName" json:"universityName"`
	UserEmail         string             `bson:"userEmail" json:"userEmail"`
	UserName          string             `bson:"userName" json:"userName"`
	ApplicationFees   string             `bson:"applicationFees" json:"applicationFees"`
	ApplicationStatus string             `bson:"applicationStatus" json:"applicationStatus"`
	PaymentStatus     string             `bson:"paymentStatus" json:"paymentStatus"`
	Feedback          string             `bson:"feedback" json:"feedback"`
	TrackingID        string             `bson:"trackingId,omitempty" json:"trackingId,omitempty"`
	ApplicationDate   time.Time          `bson:"applicationDate" json:"applicationDate"`
}
