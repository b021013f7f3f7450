package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/natindo/ParcelBot/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("Invalid login credentials")
	ErrUserExists         = errors.New("User already registered")
)

const uniqueViolation = "23505"

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp создаёт пользователя и сразу привязывает его к чату.
// Другие пользователи этого чата отвязываются.
func (b *Backend) SignUp(ctx context.Context, email, password string, chatID int64) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := models.User{
		ID:           uuid.NewString(),
		Email:        normalizeEmail(email),
		PasswordHash: string(hash),
		ChatID:       chatID,
	}

	err = b.db.QueryRow(ctx, `
INSERT INTO users (id, email, password_hash, chat_id)
VALUES ($1, $2, $3, $4)
RETURNING created_at
`, u.ID, u.Email, u.PasswordHash, u.ChatID).Scan(&u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrUserExists
		}
		return nil, err
	}

	// чат остаётся только за новым пользователем
	_, err = b.db.Exec(ctx, `
UPDATE users
SET chat_id = NULL
WHERE chat_id = $1 AND id <> $2
`, u.ChatID, u.ID)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SignIn проверяет пароль и запоминает чат пользователя (для напоминаний).
// Чат, ранее привязанный к другому пользователю, отвязывается.
func (b *Backend) SignIn(ctx context.Context, email, password string, chatID int64) (*models.User, error) {
	var u models.User
	err := b.db.QueryRow(ctx, `
SELECT id, email, password_hash, created_at
FROM users
WHERE email = $1
`, normalizeEmail(email)).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	_, err = b.db.Exec(ctx, `
UPDATE users
SET chat_id = CASE WHEN id = $2 THEN $1 ELSE NULL END
WHERE id = $2 OR chat_id = $1
`, chatID, u.ID)
	if err != nil {
		return nil, err
	}
	u.ChatID = chatID
	return &u, nil
}

// SignOut отвязывает чат от пользователя.
func (b *Backend) SignOut(ctx context.Context, userID string) error {
	_, err := b.db.Exec(ctx, `
UPDATE users
SET chat_id = NULL
WHERE id = $1
`, userID)
	return err
}
