package models

import "time"

// User is a registered trainee. PasswordHash is a bcrypt hash, the plaintext
// never touches storage.
type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	PasswordHash []byte    `db:"password_hash"`
	Created      time.Time `db:"created"`
}
