package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Patient struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName    string             `bson:"full_name" json:"full_name"`
	Email       string             `bson:"email,omitempty" json:"email,omitempty"`
	PhoneNumber string             `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

type Doctor struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName       string             `bson:"full_name" json:"full_name"`
	Specialization string             `bson:"specialization,omitempty" json:"specialization,omitempty"`
	IsAvailable    bool               `bson:"is_available" json:"is_available"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}
