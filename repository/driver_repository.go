package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"delivery-tracking/models"
)

type DriverRepository struct {
	db *sql.DB
}

func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{db: db}
}

// Create inserts a new driver account.
// Returns the created Driver with its generated ID.
func (r *DriverRepository) Create(ctx context.Context, email, passwordHash, firstName, lastName string) (*models.Driver, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO drivers (email, password_hash, first_name, last_name) VALUES (?,?,?,?)`,
		email, passwordHash, firstName, lastName)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Driver{ID: id, Email: email, PasswordHash: passwordHash, FirstName: firstName, LastName: lastName}, nil
}

func (r *DriverRepository) GetByID(ctx context.Context, id int64) (*models.Driver, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var d models.Driver
	err := r.db.QueryRowContext(ctx, `SELECT id, email, password_hash, first_name, last_name FROM drivers WHERE id = ?`, id).
		Scan(&d.ID, &d.Email, &d.PasswordHash, &d.FirstName, &d.LastName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *DriverRepository) GetByEmail(ctx context.Context, email string) (*models.Driver, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var d models.Driver
	err := r.db.QueryRowContext(ctx, `SELECT id, email, password_hash, first_name, last_name FROM drivers WHERE email = ?`, email).
		Scan(&d.ID, &d.Email, &d.PasswordHash, &d.FirstName, &d.LastName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}
