package models

import "time"

// Task хранит задачу пользователя (таблица tasks).
// DueAt == nil означает задачу без напоминания.
type Task struct {
	ID        int
	OwnerID   string
	Title     string
	Done      bool
	DueAt     *time.Time
	Notified  bool
	CreatedAt time.Time
}

// TaskReminder — задача, по которой пора напомнить, вместе с чатом владельца.
type TaskReminder struct {
	Task
	ChatID int64
}
