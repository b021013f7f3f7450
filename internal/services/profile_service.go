package services

import (
	"context"

	"github.com/natindo/ParcelBot/internal/models"
)

func (b *Backend) ListProfiles(ctx context.Context, userID string) ([]models.Profile, error) {
	rows, err := b.db.Query(ctx, `
SELECT id, user_id, full_name, phone, city, updated_at
FROM user_profiles
WHERE user_id = $1
ORDER BY id
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Profile
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.UserID, &p.FullName, &p.Phone, &p.City, &p.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (b *Backend) InsertProfile(ctx context.Context, p models.Profile) (*models.Profile, error) {
	err := b.db.QueryRow(ctx, `
INSERT INTO user_profiles (user_id, full_name, phone, city)
VALUES ($1, $2, $3, $4)
RETURNING id, updated_at
`, p.UserID, p.FullName, p.Phone, p.City).Scan(&p.ID, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile перезаписывает профиль по ID (только свой).
func (b *Backend) UpdateProfile(ctx context.Context, p models.Profile) error {
	tag, err := b.db.Exec(ctx, `
UPDATE user_profiles
SET full_name = $3, phone = $4, city = $5, updated_at = $6
WHERE user_id = $1 AND id = $2
`, p.UserID, p.ID, p.FullName, p.Phone, p.City, b.now())
	if err != nil {
		return err
	}
	return notFoundIfEmpty(tag)
}

func (b *Backend) DeleteProfile(ctx context.Context, userID string, id int) error {
	tag, err := b.db.Exec(ctx, `
DELETE FROM user_profiles
WHERE user_id = $1 AND id = $2
`, userID, id)
	if err != nil {
		return err
	}
	return notFoundIfEmpty(tag)
}
