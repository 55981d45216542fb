package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/flight-seat-ledger/internal/model"
	"github.com/iliyamo/flight-seat-ledger/internal/utils"
)

// UserRepo reads and writes the 'users' table.  The address column is
// the caller's ledger identity in hex; every ledger operation performed
// through the API is attributed to it.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user and returns its ID.  Email and address are
// unique; duplicate inserts surface as ErrEmailExists/ErrAddressExists.
func (r *UserRepo) Create(ctx context.Context, email, password, role, address string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	address = strings.ToLower(strings.TrimSpace(address))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, role, address) VALUES (?,?,?,?)",
		email, hash, role, address)
	if err != nil {
		// MySQL duplicate-key error; inspect the message to tell which
		// unique column collided.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			if strings.Contains(strings.ToLower(err.Error()), "address") {
				return 0, ErrAddressExists
			}
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,role,address,is_active,created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Address, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,role,address,is_active,created_at,updated_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Address, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByAddress fetches a user by its ledger address.
func (r *UserRepo) GetByAddress(ctx context.Context, address string) (model.User, error) {
	address = strings.ToLower(strings.TrimSpace(address))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,role,address,is_active,created_at,updated_at FROM users WHERE address=? LIMIT 1",
		address).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Address, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
