package models

import "time"

// User is a client account. Identity lives in Firebase Auth; this record
// carries the profile fields the server needs, in particular the FCM token
// for push delivery.
type User struct {
	ID        string    `bson:"id" json:"id"` // Firebase Auth UID
	Email     string    `bson:"email" json:"email"`
	FirstName string    `bson:"firstName" json:"firstName"`
	LastName  string    `bson:"lastName" json:"lastName"`
	Avatar    string    `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	FCMToken  string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// DisplayName is the name shown in conversation lists.
func (u *User) DisplayName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
