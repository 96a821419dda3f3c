package model

import "time"

// User is the local account record for an authenticated user. The ID equals
// the identity provider subject and never changes once created.
type User struct {
	ID                 string     `bson:"_id" json:"id"`
	Email              string     `bson:"email" json:"email"`
	DisplayName        string     `bson:"display_name,omitempty" json:"displayName,omitempty"`
	PhotoURL           string     `bson:"photo_url,omitempty" json:"photoUrl,omitempty"`
	CreatedAt          time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time  `bson:"updated_at" json:"updatedAt"`
	LastPasswordChange *time.Time `bson:"last_password_change,omitempty" json:"lastPasswordChange,omitempty"`
}
