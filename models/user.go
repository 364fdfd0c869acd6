package models

// Driver represents an authenticated delivery driver.
// It maps to the `drivers` table in SQLite. PasswordHash never leaves the server.
type Driver struct {
	ID           int64  `db:"id" json:"id"`
	Email        string `db:"email" json:"email"`
	FirstName    string `db:"first_name" json:"first_name"`
	LastName     string `db:"last_name" json:"last_name"`
	PasswordHash string `db:"password_hash" json:"-"`
}
