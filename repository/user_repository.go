package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/devkingori/alika/logger"
	"github.com/devkingori/alika/model"

	"github.com/lib/pq"
)

// ErrDuplicateEmail is returned by CreateUser when the email is already taken.
var ErrDuplicateEmail = errors.New("email already exists")

// IUserRepository defines the contract for user persistence. The refresh-token
// columns live on the user row, so the revocation operations are part of this
// interface rather than a separate token store.
type IUserRepository interface {
	CreateUser(user *model.User) error
	GetUserByID(id string) (*model.User, error)
	GetUserByEmail(email string) (*model.User, error)
	UpdateRefreshToken(userID string, token *string, expiresAt *time.Time) error
	UpdateProfileImage(userID string, imageURL string) error
	GetAllUsers() ([]*model.User, error)
	UpdateUserRole(userID string, newRole string) error
}

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, email, password, first_name, last_name, role, profile_image_url,
	refresh_token, refresh_token_expires_at, created_at, updated_at`

func scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.Role, &user.ProfileImageURL, &user.RefreshToken, &user.RefreshTokenExpiresAt,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) CreateUser(user *model.User) error {
	query := `INSERT INTO users (id, email, password, first_name, last_name, role)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at, updated_at`
	err := r.DB.QueryRow(query, user.ID, user.Email, user.Password, user.FirstName,
		user.LastName, user.Role).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrDuplicateEmail
		}
		logger.Log.WithError(err).Error("Failed to execute create user query")
		return err
	}
	return nil
}

func (r *UserRepository) GetUserByID(id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.DB.QueryRow(query, id))
}

func (r *UserRepository) GetUserByEmail(email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.DB.QueryRow(query, email))
}

// UpdateRefreshToken overwrites the persisted refresh token and its expiry for
// a user. Passing nil for both clears the token, which revokes any refresh
// token issued earlier.
func (r *UserRepository) UpdateRefreshToken(userID string, token *string, expiresAt *time.Time) error {
	query := `UPDATE users SET refresh_token = $2, refresh_token_expires_at = $3, updated_at = NOW()
		WHERE id = $1`
	_, err := r.DB.Exec(query, userID, token, expiresAt)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to execute update refresh token query")
		return err
	}
	return nil
}

func (r *UserRepository) UpdateProfileImage(userID string, imageURL string) error {
	query := `UPDATE users SET profile_image_url = $2, updated_at = NOW() WHERE id = $1`
	result, err := r.DB.Exec(query, userID, imageURL)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to execute update profile image query")
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *UserRepository) GetAllUsers() ([]*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at`
	rows, err := r.DB.Query(query)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute get all users query")
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user := &model.User{}
		err := rows.Scan(&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
			&user.Role, &user.ProfileImageURL, &user.RefreshToken, &user.RefreshTokenExpiresAt,
			&user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepository) UpdateUserRole(userID string, newRole string) error {
	query := `UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1`
	result, err := r.DB.Exec(query, userID, newRole)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to execute update user role query")
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
