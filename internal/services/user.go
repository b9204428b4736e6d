package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/localboost/localboost-backend/internal/database"
	"github.com/localboost/localboost-backend/internal/models"
	"github.com/localboost/localboost-backend/pkg/utils"
)

// EnsureUser makes sure a user row exists for a principal. For anonymous
// visitors the row is created on their first write (review or favorite) with
// a derived username; signed-in users already have one. Idempotent.
func EnsureUser(ctx context.Context, principalID uuid.UUID) error {
	short := strings.ReplaceAll(principalID.String(), "-", "")[:8]
	_, err := database.PostgresDB.ExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash)
		VALUES ($1, $2, $3, '')
		ON CONFLICT (id) DO NOTHING
	`, principalID, "visitor_"+short, "visitor_"+short+"@localboost.local")
	return err
}

// CreateUser registers a new user. Username and email collisions surface as
// conflict sentinels.
func CreateUser(ctx context.Context, username, email, password string) (models.User, error) {
	var user models.User

	var taken bool
	err := database.PostgresDB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(username) = LOWER($1))`, username,
	).Scan(&taken)
	if err != nil {
		return user, err
	}
	if taken {
		return user, ErrUsernameTaken
	}

	err = database.PostgresDB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`, email,
	).Scan(&taken)
	if err != nil {
		return user, err
	}
	if taken {
		return user, ErrEmailTaken
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return user, err
	}

	user = models.User{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Username:  username,
		Email:     email,
	}
	_, err = database.PostgresDB.ExecContext(ctx, `
		INSERT INTO users (id, created_at, username, email, password_hash)
		VALUES ($1, $2, $3, $4, $5)
	`, user.ID, user.CreatedAt, user.Username, user.Email, hash)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// AuthenticateUser verifies credentials and returns the user. Unknown
// usernames and wrong passwords both return ErrInvalidCredentials.
func AuthenticateUser(ctx context.Context, username, password string) (models.User, error) {
	var user models.User
	var hash string
	err := database.PostgresDB.QueryRowContext(ctx, `
		SELECT id, created_at, username, email, password_hash, is_verified
		FROM users
		WHERE LOWER(username) = LOWER($1)
	`, username).Scan(&user.ID, &user.CreatedAt, &user.Username, &user.Email, &hash, &user.IsVerified)
	if err == sql.ErrNoRows {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}

	ok, err := utils.VerifyPassword(password, hash)
	if err != nil || !ok {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser loads a user by id.
func GetUser(ctx context.Context, id uuid.UUID) (models.User, bool, error) {
	var user models.User
	err := database.PostgresDB.QueryRowContext(ctx, `
		SELECT id, created_at, username, email, is_verified
		FROM users
		WHERE id = $1
	`, id).Scan(&user.ID, &user.CreatedAt, &user.Username, &user.Email, &user.IsVerified)
	if err == sql.ErrNoRows {
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, err
	}
	return user, true, nil
}
