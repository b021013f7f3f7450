package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB — подмножество методов *pgxpool.Pool, которым пользуется бэкенд.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ErrNotFound возвращается, когда запись не найдена или принадлежит другому пользователю.
var ErrNotFound = errors.New("Record not found")

// Backend — backend-as-a-service поверх PostgreSQL: авторизация,
// задачи (tasks) и профили (user_profiles).
// Ошибки отдаются как есть, бот показывает их текст пользователю.
type Backend struct {
	db  DB
	now func() time.Time
}

func NewBackend(db DB) *Backend {
	return &Backend{db: db, now: time.Now}
}

func notFoundIfEmpty(tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
