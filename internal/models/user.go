package models

import "time"

// User — учётная запись бэкенда (таблица users).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	ChatID       int64
	CreatedAt    time.Time
}

// Profile — запись таблицы user_profiles.
type Profile struct {
	ID        int
	UserID    string
	FullName  string
	Phone     string
	City      string
	UpdatedAt time.Time
}
