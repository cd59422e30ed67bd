package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// User role constants
const (
	RolePatient    = "patient"
	RoleDoctor     = "doctor"
	RolePharmacist = "pharmacist"
)

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	switch role {
	case RolePatient, RoleDoctor, RolePharmacist:
		return true
	}
	return false
}

// User represents a registered person. UID is the external identity key; it is
// the only field with a uniqueness guarantee and the key for every lookup and
// cross-reference. The password digest is never serialized to JSON.
type User struct {
	ID           primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	UID          string             `json:"uid" bson:"uid"`
	Username     string             `json:"username" bson:"username"`
	PasswordHash string             `json:"-" bson:"password"`
	Role         string             `json:"role" bson:"role"`
	Age          *int               `json:"age,omitempty" bson:"age,omitempty"`
	Gender       string             `json:"gender,omitempty" bson:"gender,omitempty"`
	Address      string             `json:"address,omitempty" bson:"address,omitempty"`
	Phone        string             `json:"phone,omitempty" bson:"phone,omitempty"`
}

// RegisterRequest represents registration parameters
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=patient doctor pharmacist"`
	UID      string `json:"uid" binding:"required"`
	Age      *int   `json:"age"`
	Gender   string `json:"gender"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

// LoginRequest represents login parameters
type LoginRequest struct {
	UID      string `json:"uid" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries the bearer token issued on login.
type TokenResponse struct {
	Token string `json:"token"`
}
