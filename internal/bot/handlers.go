package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/natindo/ParcelBot/internal/models"
	"github.com/natindo/ParcelBot/internal/wizard"
)

const helpText = "Commands:\n" +
	"/login — sign in\n" +
	"/signup — create an account\n" +
	"/logout — sign out\n" +
	"/send — send a parcel step by step\n" +
	"/back — previous step of the parcel form\n" +
	"/cancel — cancel the current action\n" +
	"/tasks — your tasks\n" +
	"/addtask <title> [@ YYYY-MM-DD HH:MM] — add a task with an optional reminder\n" +
	"/done <id> — mark a task done or open again\n" +
	"/deltask <id> — delete a task\n" +
	"/profile — your profile card\n" +
	"/editprofile — edit your profile\n" +
	"/deleteprofile — delete your profile\n" +
	"/help — this help"

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	s := b.session(chatID)

	switch msg.Command() {
	case "start":
		b.cmdStart(chatID, s)
		return
	case "help":
		b.send(chatID, helpText)
		return
	case "login":
		b.cmdLogin(chatID, s)
		return
	case "signup":
		b.cmdSignup(chatID, s)
		return
	case "cancel":
		b.cmdCancel(chatID, s)
		return
	}

	// Остальные команды доступны только после входа.
	if !s.SignedIn() {
		b.send(chatID, "Please /login or /signup first.")
		return
	}

	switch msg.Command() {
	case "logout":
		b.cmdLogout(ctx, chatID, s)
	case "send":
		b.cmdSend(chatID, s)
	case "back":
		b.cmdBack(chatID, s)
	case "tasks":
		b.cmdTasks(ctx, chatID, s)
	case "addtask":
		b.cmdAddTask(ctx, chatID, s, msg.CommandArguments())
	case "done":
		b.cmdDone(ctx, chatID, s, msg.CommandArguments())
	case "deltask":
		b.cmdDeleteTask(ctx, chatID, s, msg.CommandArguments())
	case "profile":
		b.cmdProfile(ctx, chatID, s)
	case "editprofile":
		b.cmdEditProfile(ctx, chatID, s)
	case "deleteprofile":
		b.cmdDeleteProfile(ctx, chatID, s)
	default:
		b.send(chatID, "Unknown command. Use /help")
	}
}

func (b *Bot) cmdStart(chatID int64, s *Session) {
	text := "Hi! I help you send parcels across the country.\n\n"
	if s.SignedIn() {
		text += "Signed in as " + s.User.Email + ".\n\n"
	} else {
		text += "Please /login or /signup to get started.\n\n"
	}
	b.send(chatID, text+helpText)
}

func (b *Bot) cmdLogin(chatID int64, s *Session) {
	if s.SignedIn() {
		b.send(chatID, "You are already signed in as "+s.User.Email+". Use /logout to switch accounts.")
		return
	}
	s.resetForm()
	s.dialog = dialogLoginEmail
	b.send(chatID, "Welcome back!\nEnter your email:")
}

func (b *Bot) cmdSignup(chatID int64, s *Session) {
	if s.SignedIn() {
		b.send(chatID, "You are already signed in as "+s.User.Email+". Use /logout first.")
		return
	}
	s.resetForm()
	s.dialog = dialogSignupEmail
	b.send(chatID, "Create your account.\nEnter your email:")
}

func (b *Bot) cmdLogout(ctx context.Context, chatID int64, s *Session) {
	if s.wizard != nil && s.wizard.Submitting() {
		b.showError(chatID, wizard.ErrSubmitting)
		return
	}
	if err := b.backend.SignOut(ctx, s.User.ID); err != nil {
		b.log.Error("ошибка SignOut", zap.String("user_id", s.User.ID), zap.Error(err))
		b.showError(chatID, err)
		return
	}
	s.closeWizard()
	s.resetForm()
	s.User = nil
	b.send(chatID, "Signed out.")
}

// cmdCancel закрывает мастер (со сбросом данных) или прерывает текущий ввод.
func (b *Bot) cmdCancel(chatID int64, s *Session) {
	switch {
	case s.wizard != nil:
		if err := s.closeWizard(); err != nil {
			b.showError(chatID, err)
			return
		}
		s.resetForm()
		s.profileDraft = models.Profile{}
		b.send(chatID, "Parcel form closed. Nothing was sent.")
	case s.dialog != dialogNone:
		s.resetForm()
		s.profileDraft = models.Profile{}
		b.send(chatID, "Cancelled.")
	default:
		b.send(chatID, "Nothing to cancel.")
	}
}

func (b *Bot) cmdSend(chatID int64, s *Session) {
	if s.wizard != nil {
		b.send(chatID, "You already have a parcel form open. Continue below or /cancel it.")
		b.showStep(chatID, s)
		return
	}
	s.resetForm()
	store := wizard.NewStore()
	store.Subscribe(func(st wizard.State) {
		b.log.Debug("состояние мастера изменено",
			zap.Int64("chat_id", chatID),
			zap.Int("total_price", st.TotalPrice()))
	})
	s.wizard = wizard.NewController(store, wizard.WithSubmitDelay(b.submitDelay))
	b.log.Debug("мастер отправки открыт", zap.Int64("chat_id", chatID))
	b.showStep(chatID, s)
}

func (b *Bot) cmdBack(chatID int64, s *Session) {
	if s.wizard == nil {
		b.send(chatID, "There is no parcel form open. Use /send to start one.")
		return
	}
	if s.wizard.Submitting() {
		b.showError(chatID, wizard.ErrSubmitting)
		return
	}
	if !s.wizard.Back() {
		b.send(chatID, "You are on the first step.")
		return
	}
	b.showStep(chatID, s)
}
