// Package domain contains the core business entities for Filebridge.
// These are pure Go structs with no external dependencies, representing
// the fundamental concepts of the file exchange service.
package domain

import (
	"time"
)

// Role represents the permission level of an account.
type Role string

const (
	// RoleOperator is permitted to upload files in addition to listing
	// and downloading them.
	RoleOperator Role = "operator"

	// RoleClient is permitted to list and download files but not upload.
	RoleClient Role = "client"
)

// Valid returns true if the role is one of the known roles.
// Unknown roles are rejected at registration rather than stored
// and left to fail every later role check.
func (r Role) Valid() bool {
	return r == RoleOperator || r == RoleClient
}

// Account represents a registered user of the exchange.
// Accounts start unverified and become verified exactly once, by
// redeeming the verification token issued at registration.
type Account struct {
	// Username is the unique, immutable login name.
	Username string `json:"username"`

	// Email is the contact address verification tokens are delivered to.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the account's password.
	// This should never be exposed in API responses.
	PasswordHash string `json:"-"`

	// Role determines what the account may do (operator or client).
	Role Role `json:"role"`

	// Verified indicates the account has proven control of its email.
	// Unverified accounts cannot log in.
	Verified bool `json:"verified"`

	// CreatedAt is the timestamp when the account was registered.
	CreatedAt time.Time `json:"created_at"`
}

// NewAccount creates an unverified Account.
func NewAccount(username, email, passwordHash string, role Role) *Account {
	return &Account{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		Verified:     false,
		CreatedAt:    time.Now().UTC(),
	}
}

// CanLogin returns true if the account is allowed to obtain a session.
func (a *Account) CanLogin() bool {
	return a.Verified
}
