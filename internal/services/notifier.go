package services

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/natindo/ParcelBot/internal/models"
)

// Messenger — отправка сообщений в Telegram (*tgbotapi.BotAPI).
type Messenger interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// StartNotifier каждые interval проверяет задачи и напоминает о тех,
// срок которых наступит в течение before. Останавливается по ctx.
func StartNotifier(ctx context.Context, bot Messenger, backend *Backend, log *zap.Logger, interval, before time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			notifyDue(ctx, bot, backend, log, before)
		}
	}
}

func notifyDue(ctx context.Context, bot Messenger, backend *Backend, log *zap.Logger, before time.Duration) int {
	reminders, err := backend.FindTasksToRemind(ctx, backend.now(), before)
	if err != nil {
		log.Error("ошибка FindTasksToRemind", zap.Error(err))
		return 0
	}

	sent := 0
	for _, r := range reminders {
		if _, err := bot.Send(tgbotapi.NewMessage(r.ChatID, reminderText(r))); err != nil {
			log.Warn("не удалось отправить напоминание",
				zap.Int64("chat_id", r.ChatID),
				zap.Int("task_id", r.ID),
				zap.Error(err))
			continue
		}
		if err := backend.MarkTaskNotified(ctx, r.ID); err != nil {
			log.Error("ошибка MarkTaskNotified", zap.Int("task_id", r.ID), zap.Error(err))
			continue
		}
		sent++
	}
	return sent
}

func reminderText(r models.TaskReminder) string {
	due := ""
	if r.DueAt != nil {
		due = r.DueAt.Format("2006-01-02 15:04")
	}
	return fmt.Sprintf("Reminder!\nTask #%d is due at %s:\n%s", r.ID, due, r.Title)
}
