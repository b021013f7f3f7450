package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/natindo/ParcelBot/internal/models"
)

const taskColumns = `id, owner_id, title, done, due_at, notified, created_at`

func scanTask(row pgx.Row) (models.Task, error) {
	var t models.Task
	err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Done, &t.DueAt, &t.Notified, &t.CreatedAt)
	return t, err
}

// ListTasks возвращает задачи владельца: сначала открытые, ближайшие по сроку.
func (b *Backend) ListTasks(ctx context.Context, ownerID string) ([]models.Task, error) {
	rows, err := b.db.Query(ctx, `
SELECT `+taskColumns+`
FROM tasks
WHERE owner_id = $1
ORDER BY done, due_at NULLS LAST, id
`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// GetTask возвращает задачу, если она принадлежит ownerID.
func (b *Backend) GetTask(ctx context.Context, ownerID string, id int) (*models.Task, error) {
	t, err := scanTask(b.db.QueryRow(ctx, `
SELECT `+taskColumns+`
FROM tasks
WHERE owner_id = $1 AND id = $2
`, ownerID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// InsertTask вставляет задачу и возвращает её с ID.
func (b *Backend) InsertTask(ctx context.Context, t models.Task) (*models.Task, error) {
	err := b.db.QueryRow(ctx, `
INSERT INTO tasks (owner_id, title, done, due_at, notified)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at
`, t.OwnerID, t.Title, t.Done, t.DueAt, t.Notified).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTask перезаписывает задачу по ID (только если owner_id совпадает).
func (b *Backend) UpdateTask(ctx context.Context, t models.Task) error {
	tag, err := b.db.Exec(ctx, `
UPDATE tasks
SET title = $3, done = $4, due_at = $5, notified = $6
WHERE owner_id = $1 AND id = $2
`, t.OwnerID, t.ID, t.Title, t.Done, t.DueAt, t.Notified)
	if err != nil {
		return err
	}
	return notFoundIfEmpty(tag)
}

// DeleteTask удаляет задачу по ID (только если owner_id совпадает).
func (b *Backend) DeleteTask(ctx context.Context, ownerID string, id int) error {
	tag, err := b.db.Exec(ctx, `
DELETE FROM tasks
WHERE owner_id = $1 AND id = $2
`, ownerID, id)
	if err != nil {
		return err
	}
	return notFoundIfEmpty(tag)
}

// FindTasksToRemind ищет задачи, по которым пора отправить напоминание:
// не выполнены, ещё не напоминали, срок наступит в течение before.
func (b *Backend) FindTasksToRemind(ctx context.Context, now time.Time, before time.Duration) ([]models.TaskReminder, error) {
	rows, err := b.db.Query(ctx, `
SELECT t.id, t.owner_id, t.title, t.done, t.due_at, t.notified, t.created_at, u.chat_id
FROM tasks t
JOIN users u ON u.id = t.owner_id
WHERE t.done = false
  AND t.notified = false
  AND t.due_at IS NOT NULL
  AND u.chat_id IS NOT NULL
  AND t.due_at > $1
  AND t.due_at <= $2
`, now, now.Add(before))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.TaskReminder
	for rows.Next() {
		var r models.TaskReminder
		if err := rows.Scan(&r.ID, &r.OwnerID, &r.Title, &r.Done, &r.DueAt, &r.Notified, &r.CreatedAt, &r.ChatID); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

func (b *Backend) MarkTaskNotified(ctx context.Context, id int) error {
	_, err := b.db.Exec(ctx, `
UPDATE tasks
SET notified = true
WHERE id = $1
`, id)
	return err
}
