package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/localboost/localboost-backend/internal/database"
	"github.com/localboost/localboost-backend/internal/models"
)

// AddFavorite bookmarks a business for a user. The favorites table has a
// unique (user_id, business_id) constraint and the insert rides on it with
// ON CONFLICT DO NOTHING, so concurrent duplicate adds cannot both succeed.
func AddFavorite(ctx context.Context, userID, businessID uuid.UUID, notes string) (models.Favorite, error) {
	if _, err := GetBusiness(ctx, businessID); err != nil {
		return models.Favorite{}, err
	}
	if err := EnsureUser(ctx, userID); err != nil {
		return models.Favorite{}, err
	}

	favorite := models.Favorite{
		ID:         uuid.New(),
		CreatedAt:  time.Now().UTC(),
		UserID:     userID,
		BusinessID: businessID,
		Notes:      notes,
	}
	result, err := database.PostgresDB.ExecContext(ctx, `
		INSERT INTO favorites (id, created_at, user_id, business_id, notes)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, business_id) DO NOTHING
	`, favorite.ID, favorite.CreatedAt, favorite.UserID, favorite.BusinessID, favorite.Notes)
	if err != nil {
		return models.Favorite{}, err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return models.Favorite{}, ErrAlreadyFavorited
	}
	return favorite, nil
}

// ListFavorites returns a user's favorites, newest first.
func ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	rows, err := database.PostgresDB.QueryContext(ctx, `
		SELECT id, created_at, user_id, business_id, COALESCE(notes, '')
		FROM favorites
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favorites []models.Favorite
	for rows.Next() {
		var f models.Favorite
		if err := rows.Scan(&f.ID, &f.CreatedAt, &f.UserID, &f.BusinessID, &f.Notes); err != nil {
			return nil, err
		}
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

// RemoveFavorite deletes one of the user's own favorites. Deleting someone
// else's favorite (or an unknown id) reports not found.
func RemoveFavorite(ctx context.Context, userID, favoriteID uuid.UUID) error {
	result, err := database.PostgresDB.ExecContext(ctx, `
		DELETE FROM favorites WHERE id = $1 AND user_id = $2
	`, favoriteID, userID)
	if err != nil {
		return err
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}
