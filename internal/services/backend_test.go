package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/natindo/ParcelBot/internal/models"
)

func TestSignUp_HashesPassword(t *testing.T) {
	created := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	db := &fakeDB{rows: []fakeRow{{values: []any{created}}}}
	b := NewBackend(db)

	u, err := b.SignUp(context.Background(), "  Ama@Example.com ", "secret1", 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Email != "ama@example.com" {
		t.Errorf("expected normalized email, got %q", u.Email)
	}
	if u.ID == "" || u.ChatID != 42 || !u.CreatedAt.Equal(created) {
		t.Errorf("unexpected user %+v", u)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestSignUp_UnbindsChatFromOtherUsers(t *testing.T) {
	db := &fakeDB{rows: []fakeRow{{values: []any{time.Now()}}}}
	b := NewBackend(db)

	u, err := b.SignUp(context.Background(), "kofi@example.com", "secret1", 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call := db.execContaining("chat_id = NULL")
	if call == nil {
		t.Fatal("expected the chat to be unbound from other users")
	}
	if call.args[0] != int64(42) || call.args[1] != u.ID {
		t.Errorf("unexpected args %v", call.args)
	}
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	db := &fakeDB{rows: []fakeRow{{err: &pgconn.PgError{Code: "23505"}}}}
	b := NewBackend(db)

	_, err := b.SignUp(context.Background(), "ama@example.com", "secret1", 42)
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if err.Error() != "User already registered" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if len(db.execs) != 0 {
		t.Error("a failed sign up must not touch other users")
	}
}

func TestSignIn(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	userRow := fakeRow{values: []any{"u-1", "ama@example.com", string(hash), time.Now()}}

	t.Run("unknown email", func(t *testing.T) {
		b := NewBackend(&fakeDB{rows: []fakeRow{{err: pgx.ErrNoRows}}})
		if _, err := b.SignIn(context.Background(), "nobody@example.com", "secret1", 1); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		db := &fakeDB{rows: []fakeRow{userRow}}
		b := NewBackend(db)
		if _, err := b.SignIn(context.Background(), "ama@example.com", "wrong", 1); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
		if len(db.execs) != 0 {
			t.Error("chat must not be bound on failed login")
		}
	})

	t.Run("success binds chat", func(t *testing.T) {
		db := &fakeDB{rows: []fakeRow{userRow}}
		b := NewBackend(db)
		u, err := b.SignIn(context.Background(), "AMA@example.com", "secret1", 77)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u.ID != "u-1" || u.ChatID != 77 {
			t.Errorf("unexpected user %+v", u)
		}
		call := db.execContaining("SET chat_id")
		if call == nil || call.args[0] != int64(77) || call.args[1] != "u-1" {
			t.Errorf("chat binding not executed: %+v", call)
		}
	})
}

func TestSignOut(t *testing.T) {
	db := &fakeDB{affected: 1}
	if err := NewBackend(db).SignOut(context.Background(), "u-1"); err != nil {
		t.Fatal(err)
	}
	if call := db.execContaining("chat_id = NULL"); call == nil || call.args[0] != "u-1" {
		t.Errorf("unexpected sign out call %+v", call)
	}
}

func TestListTasks(t *testing.T) {
	due := time.Date(2026, 10, 17, 15, 4, 0, 0, time.UTC)
	db := &fakeDB{queries: [][][]any{{
		{1, "u-1", "Buy tape", false, due, false, time.Now()},
		{2, "u-1", "Call courier", true, nil, false, time.Now()},
	}}}

	tasks, err := NewBackend(db).ListTasks(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].DueAt == nil || !tasks[0].DueAt.Equal(due) {
		t.Errorf("unexpected due time %v", tasks[0].DueAt)
	}
	if tasks[1].DueAt != nil || !tasks[1].Done {
		t.Errorf("unexpected second task %+v", tasks[1])
	}
}

func TestGetTask_NotFound(t *testing.T) {
	db := &fakeDB{rows: []fakeRow{{err: pgx.ErrNoRows}}}
	if _, err := NewBackend(db).GetTask(context.Background(), "u-1", 5); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestInsertTask(t *testing.T) {
	db := &fakeDB{rows: []fakeRow{{values: []any{12, time.Now()}}}}
	task, err := NewBackend(db).InsertTask(context.Background(), models.Task{OwnerID: "u-1", Title: "Pack box"})
	if err != nil {
		t.Fatal(err)
	}
	if task.ID != 12 || task.Title != "Pack box" {
		t.Errorf("unexpected task %+v", task)
	}
}

func TestUpdateAndDelete_NotFound(t *testing.T) {
	b := NewBackend(&fakeDB{affected: 0})
	ctx := context.Background()

	if err := b.UpdateTask(ctx, models.Task{ID: 1, OwnerID: "u-1"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateTask: expected ErrNotFound, got %v", err)
	}
	if err := b.DeleteTask(ctx, "u-1", 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteTask: expected ErrNotFound, got %v", err)
	}
	if err := b.UpdateProfile(ctx, models.Profile{ID: 1, UserID: "u-1"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateProfile: expected ErrNotFound, got %v", err)
	}
	if err := b.DeleteProfile(ctx, "u-1", 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteProfile: expected ErrNotFound, got %v", err)
	}
}

func TestUpdateTask_Scoped(t *testing.T) {
	db := &fakeDB{affected: 1}
	err := NewBackend(db).UpdateTask(context.Background(), models.Task{ID: 3, OwnerID: "u-1", Title: "x", Done: true})
	if err != nil {
		t.Fatal(err)
	}
	call := db.execs[0]
	if !strings.Contains(call.sql, "WHERE owner_id = $1 AND id = $2") || call.args[0] != "u-1" || call.args[1] != 3 {
		t.Errorf("update must be owner scoped: %+v", call)
	}
}

func TestProfiles(t *testing.T) {
	db := &fakeDB{
		queries: [][][]any{{{1, "u-1", "Ama Mensah", "0241234567", "Accra", time.Now()}}},
		rows:    []fakeRow{{values: []any{2, time.Now()}}},
	}
	b := NewBackend(db)

	list, err := b.ListProfiles(context.Background(), "u-1")
	if err != nil || len(list) != 1 || list[0].City != "Accra" {
		t.Fatalf("unexpected list %+v (err %v)", list, err)
	}
	p, err := b.InsertProfile(context.Background(), models.Profile{UserID: "u-1", FullName: "Kofi"})
	if err != nil || p.ID != 2 {
		t.Fatalf("unexpected insert %+v (err %v)", p, err)
	}
}

func TestNotifyDue(t *testing.T) {
	due := time.Now().Add(10 * time.Minute)
	db := &fakeDB{
		queries:  [][][]any{{{7, "u-1", "Drop parcel", false, due, false, time.Now(), int64(99)}}},
		affected: 1,
	}
	bot := &fakeMessenger{}

	sent := notifyDue(context.Background(), bot, NewBackend(db), zap.NewNop(), 30*time.Minute)
	if sent != 1 || len(bot.sent) != 1 {
		t.Fatalf("expected one reminder, got %d", sent)
	}
	if bot.sent[0].ChatID != 99 || !strings.Contains(bot.sent[0].Text, "Drop parcel") {
		t.Errorf("unexpected reminder %+v", bot.sent[0])
	}
	if call := db.execContaining("SET notified = true"); call == nil || call.args[0] != 7 {
		t.Errorf("task must be marked notified: %+v", call)
	}
}

func TestNotifyDue_SendFailureKeepsTaskPending(t *testing.T) {
	db := &fakeDB{queries: [][][]any{{{7, "u-1", "Drop parcel", false, time.Now(), false, time.Now(), int64(99)}}}}
	bot := &fakeMessenger{err: errors.New("blocked by user")}

	if sent := notifyDue(context.Background(), bot, NewBackend(db), zap.NewNop(), time.Hour); sent != 0 {
		t.Errorf("expected nothing sent, got %d", sent)
	}
	if len(db.execs) != 0 {
		t.Error("task must not be marked notified when sending failed")
	}
}
