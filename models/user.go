package models

import "time"

// UserProfile is the per-user document refreshed on every sign-in
type UserProfile struct {
	UID         string    `bson:"uid" json:"uid"`
	Email       string    `bson:"email" json:"email"`
	DisplayName string    `bson:"displayName" json:"displayName"`
	PhotoURL    string    `bson:"photoURL" json:"photoURL"`
	Provider    string    `bson:"provider" json:"provider"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"` // only written on first sign-in
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}
