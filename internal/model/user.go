package model

import "time"

// User represents an application account as stored in the `users` table.
// PasswordHash holds the bcrypt digest of the signup password; the
// plaintext is never persisted.  IsAdmin gates access to the catalog
// mutation endpoints.  Accounts are created at signup and are immutable
// afterwards; there is no profile-edit flow.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – display name chosen at signup.
//  Email        – unique email address, also the token subject.
//  PasswordHash – bcrypt hashed password.
//  Phone        – contact phone number.
//  IsAdmin      – whether the account may perform catalog mutations.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Phone        string    // users.phone
	IsAdmin      bool      // users.is_admin
	CreatedAt    time.Time // users.created_at
}
