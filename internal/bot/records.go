package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/natindo/ParcelBot/internal/models"
)

const dueLayout = "2006-01-02 15:04"

var (
	errTaskTitleRequired = errors.New("Please enter a task title: /addtask Buy tape @ 2026-10-20 09:00")
	errBadDue            = errors.New("Could not read the reminder time, use YYYY-MM-DD HH:MM.")
	errDueInPast         = errors.New("The reminder time must be in the future.")
	errBadTaskID         = errors.New("Invalid task ID.")
)

// parseTaskArgs разбирает "<title> [@ YYYY-MM-DD HH:MM]".
func parseTaskArgs(args string, now time.Time) (string, *time.Time, error) {
	title := strings.TrimSpace(args)
	var due *time.Time
	if i := strings.LastIndex(title, " @"); i >= 0 {
		raw := strings.TrimSpace(title[i+2:])
		title = strings.TrimSpace(title[:i])
		t, err := time.ParseInLocation(dueLayout, raw, now.Location())
		if err != nil {
			return "", nil, errBadDue
		}
		if !t.After(now) {
			return "", nil, errDueInPast
		}
		due = &t
	}
	if title == "" {
		return "", nil, errTaskTitleRequired
	}
	return title, due, nil
}

func parseTaskID(args string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil || id <= 0 {
		return 0, errBadTaskID
	}
	return id, nil
}

func (b *Bot) cmdTasks(ctx context.Context, chatID int64, s *Session) {
	tasks, err := b.backend.ListTasks(ctx, s.User.ID)
	if err != nil {
		b.log.Error("ошибка ListTasks", zap.String("user_id", s.User.ID), zap.Error(err))
		b.showError(chatID, err)
		return
	}
	if len(tasks) == 0 {
		b.send(chatID, "You have no tasks. Add one with /addtask <title>.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Your tasks:\n")
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, t := range tasks {
		box := "☐"
		if t.Done {
			box = "☑"
		}
		sb.WriteString(fmt.Sprintf("%d) %s #%d %s", i+1, box, t.ID, t.Title))
		if t.DueAt != nil {
			sb.WriteString(" (due " + t.DueAt.Format(dueLayout) + ")")
		}
		sb.WriteString("\n")

		doneLabel := fmt.Sprintf("✓ #%d", t.ID)
		if t.Done {
			doneLabel = fmt.Sprintf("↺ #%d", t.ID)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(doneLabel, cbTaskDone+strconv.Itoa(t.ID)),
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("🗑 #%d", t.ID), cbTaskDelete+strconv.Itoa(t.ID)),
		))
	}
	b.sendWithKeyboard(chatID, sb.String(), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) cmdAddTask(ctx context.Context, chatID int64, s *Session, args string) {
	title, due, err := parseTaskArgs(args, b.now())
	if err != nil {
		b.showError(chatID, err)
		return
	}
	task, err := b.backend.InsertTask(ctx, models.Task{OwnerID: s.User.ID, Title: title, DueAt: due})
	if err != nil {
		b.log.Error("ошибка InsertTask", zap.String("user_id", s.User.ID), zap.Error(err))
		b.showError(chatID, err)
		return
	}
	text := fmt.Sprintf("Task #%d added: %s", task.ID, task.Title)
	if task.DueAt != nil {
		text += "\nI will remind you before " + task.DueAt.Format(dueLayout) + "."
	}
	b.send(chatID, text)
}

func (b *Bot) cmdDone(ctx context.Context, chatID int64, s *Session, args string) {
	id, err := parseTaskID(args)
	if err != nil {
		b.showError(chatID, err)
		return
	}
	b.toggleTask(ctx, chatID, s, id)
}

func (b *Bot) cmdDeleteTask(ctx context.Context, chatID int64, s *Session, args string) {
	id, err := parseTaskID(args)
	if err != nil {
		b.showError(chatID, err)
		return
	}
	b.deleteTask(ctx, chatID, s, id)
}

func (b *Bot) toggleTask(ctx context.Context, chatID int64, s *Session, id int) {
	task, err := b.backend.GetTask(ctx, s.User.ID, id)
	if err != nil {
		b.showError(chatID, err)
		return
	}
	task.Done = !task.Done
	// снова открытая задача с будущим сроком получит напоминание
	if !task.Done && task.DueAt != nil && task.DueAt.After(b.now()) {
		task.Notified = false
	}
	if err := b.backend.UpdateTask(ctx, *task); err != nil {
		b.log.Error("ошибка UpdateTask", zap.Int("task_id", id), zap.Error(err))
		b.showError(chatID, err)
		return
	}
	if task.Done {
		b.send(chatID, fmt.Sprintf("Task #%d is done.", id))
	} else {
		b.send(chatID, fmt.Sprintf("Task #%d is open again.", id))
	}
}

func (b *Bot) deleteTask(ctx context.Context, chatID int64, s *Session, id int) {
	if err := b.backend.DeleteTask(ctx, s.User.ID, id); err != nil {
		b.showError(chatID, err)
		return
	}
	b.send(chatID, fmt.Sprintf("Task #%d deleted.", id))
}

// profileCard — текстовая карточка профиля.
func profileCard(u *models.User, p *models.Profile) string {
	var sb strings.Builder
	sb.WriteString("👤 Profile\n")
	if p == nil {
		sb.WriteString("Email: " + u.Email + "\n\nYou have no profile yet. Use /editprofile to create one.")
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\nCity: %s\n\nUpdated %s",
		orEmpty(p.FullName), u.Email, orEmpty(p.Phone), orEmpty(p.City), p.UpdatedAt.Format(dueLayout)))
	return sb.String()
}

func (b *Bot) currentProfile(ctx context.Context, userID string) (*models.Profile, error) {
	profiles, err := b.backend.ListProfiles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, nil
	}
	return &profiles[0], nil
}

func (b *Bot) cmdProfile(ctx context.Context, chatID int64, s *Session) {
	p, err := b.currentProfile(ctx, s.User.ID)
	if err != nil {
		b.log.Error("ошибка ListProfiles", zap.String("user_id", s.User.ID), zap.Error(err))
		b.showError(chatID, err)
		return
	}
	b.send(chatID, profileCard(s.User, p))
}

func (b *Bot) cmdEditProfile(ctx context.Context, chatID int64, s *Session) {
	if s.wizard != nil {
		b.send(chatID, "Finish the parcel form or /cancel it before editing your profile.")
		return
	}
	p, err := b.currentProfile(ctx, s.User.ID)
	if err != nil {
		b.showError(chatID, err)
		return
	}
	s.profileDraft = models.Profile{UserID: s.User.ID}
	if p != nil {
		s.profileDraft = *p
	}
	s.dialog = dialogProfileName
	b.send(chatID, "Full name"+currentHint(s.profileDraft.FullName)+":")
}

func currentHint(v string) string {
	if v == "" {
		return ""
	}
	return " (now: " + v + ", send - to keep)"
}

// keepOr возвращает старое значение, если пользователь прислал "-".
func keepOr(old, input string) string {
	if input == "-" {
		return old
	}
	return input
}

func (b *Bot) handleProfileInput(ctx context.Context, chatID int64, s *Session, text string) {
	switch s.dialog {
	case dialogProfileName:
		s.profileDraft.FullName = keepOr(s.profileDraft.FullName, text)
		s.dialog = dialogProfilePhone
		b.send(chatID, "Phone number"+currentHint(s.profileDraft.Phone)+":")
	case dialogProfilePhone:
		s.profileDraft.Phone = keepOr(s.profileDraft.Phone, text)
		s.dialog = dialogProfileCity
		b.send(chatID, "City or town"+currentHint(s.profileDraft.City)+":")
	case dialogProfileCity:
		s.profileDraft.City = keepOr(s.profileDraft.City, text)
		s.dialog = dialogNone
		b.saveProfile(ctx, chatID, s)
	}
}

func (b *Bot) saveProfile(ctx context.Context, chatID int64, s *Session) {
	p := s.profileDraft
	s.profileDraft = models.Profile{}
	p.UserID = s.User.ID

	if p.ID == 0 {
		saved, err := b.backend.InsertProfile(ctx, p)
		if err != nil {
			b.log.Error("ошибка InsertProfile", zap.String("user_id", p.UserID), zap.Error(err))
			b.showError(chatID, err)
			return
		}
		p = *saved
	} else {
		if err := b.backend.UpdateProfile(ctx, p); err != nil {
			b.log.Error("ошибка UpdateProfile", zap.Int("profile_id", p.ID), zap.Error(err))
			b.showError(chatID, err)
			return
		}
		p.UpdatedAt = b.now()
	}
	b.send(chatID, "Profile saved.\n\n"+profileCard(s.User, &p))
}

func (b *Bot) cmdDeleteProfile(ctx context.Context, chatID int64, s *Session) {
	p, err := b.currentProfile(ctx, s.User.ID)
	if err != nil {
		b.showError(chatID, err)
		return
	}
	if p == nil {
		b.send(chatID, "You have no profile.")
		return
	}
	if err := b.backend.DeleteProfile(ctx, s.User.ID, p.ID); err != nil {
		b.showError(chatID, err)
		return
	}
	b.send(chatID, "Profile deleted.")
}
