// Package model defines the data structures used throughout the application.
package model

import "time"

// User is a registered account.
//
// The access token is handed out once, when the account is created, and never
// changes afterwards. Login returns that same token; there is no expiry and no
// rotation.
//
// PasswordHash is tagged json:"-" so an account can never leak its hash
// through an accidental writeJSON(w, user).
type User struct {
	ID           string    `json:"id"          db:"id"`
	Username     string    `json:"username"    db:"username"`
	PasswordHash string    `json:"-"           db:"password_hash"`
	AccessToken  string    `json:"accessToken" db:"access_token"`
	CreatedAt    time.Time `json:"createdAt"   db:"created_at"`
}
