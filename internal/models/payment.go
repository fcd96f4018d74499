package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is the durable record of a confirmed checkout. TransactionID is the
// provider's payment reference and carries a unique index; a given reference
// can be recorded at most once. Records are immutable after insertion.
type Payment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TransactionID   string             `bson:"transactionId" json:"transactionId"`
	Amount          float64            `bson:"amount" json:"amount"`
	Currency        string             `bson:"currency" json:"currency"`
	CustomerEmail   string             `bson:"customerEmail" json:"customerEmail"`
	ApplicationID   string             `bson:"applicationId" json:"applicationId"`
	ScholarshipName string             `bson:"scholarshipName" json:"scholarshipName"`
	UniversityName  string             `bson:"universityName" json:"universityName"`
	UserName        string             `bson:"userName" json:"userName"`
	PaymentStatus   string             `bson:"paymentStatus" json:"paymentStatus"`
	TrackingID      string             `bson:"trackingId" json:"trackingId"`
	PaidAt          time.Time          `bson:"paidAt" json:"paidAt"`
}
