package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prescription type constants
const (
	PrescriptionTypeDiabetes = "diabetes"
	PrescriptionTypeGeneral  = "general"
)

// ValidPrescriptionType reports whether t is a known prescription type.
func ValidPrescriptionType(t string) bool {
	return t == PrescriptionTypeDiabetes || t == PrescriptionTypeGeneral
}

// Prescription references its patient by UID and its prescriber by display
// name. Neither is validated against the users collection; the coupling is
// intentionally loose. Fulfilled only ever transitions false to true.
type Prescription struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UID       string             `json:"uid" bson:"uid"`
	Type      string             `json:"type" bson:"type"`
	Details   string             `json:"details" bson:"details"`
	Doctor    string             `json:"doctor" bson:"doctor"`
	Date      time.Time          `json:"date" bson:"date"`
	Fulfilled bool               `json:"fulfilled" bson:"fulfilled"`
}

// CreatePrescriptionRequest represents prescription creation parameters.
// Date and fulfilled are server-assigned and not caller-supplied.
type CreatePrescriptionRequest struct {
	UID     string `json:"uid" binding:"required"`
	Type    string `json:"type" binding:"required,oneof=diabetes general"`
	Details string `json:"details" binding:"required"`
	Doctor  string `json:"doctor" binding:"required"`
}

// PrescriptionFilter carries the optional equality filters for listing.
// Empty fields are wildcards; set fields combine with AND semantics.
type PrescriptionFilter struct {
	UID    string `json:"uid" form:"uid"`
	Doctor string `json:"doctor" form:"doctor"`
}
