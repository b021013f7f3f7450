package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/natindo/ParcelBot/internal/auth"
	"github.com/natindo/ParcelBot/internal/wizard"
)

// handleText обрабатывает пошаговый ввод: вход, регистрация,
// отправитель/получатель и профиль.
func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	s := b.session(chatID)
	text := strings.TrimSpace(msg.Text)

	switch s.dialog {
	case dialogLoginEmail:
		s.email = text
		s.dialog = dialogLoginPassword
		b.send(chatID, "Enter your password:")

	case dialogLoginPassword:
		b.forgetSecret(chatID, msg.MessageID)
		s.password = msg.Text
		b.submitLogin(ctx, chatID, s)

	case dialogSignupEmail:
		if err := auth.ValidateSignUpEmail(text); err != nil {
			b.showError(chatID, err)
			return
		}
		s.email = text
		s.dialog = dialogSignupPassword
		b.send(chatID, "Choose a password (at least 6 characters):")

	case dialogSignupPassword:
		b.forgetSecret(chatID, msg.MessageID)
		s.password = msg.Text
		s.dialog = dialogSignupConfirm
		b.send(chatID, "Password strength: "+auth.StrengthLabel(s.password)+"\nRepeat the password:")

	case dialogSignupConfirm:
		b.forgetSecret(chatID, msg.MessageID)
		b.submitSignup(ctx, chatID, s, msg.Text)

	case dialogSenderName, dialogRecipientName:
		s.partyDraft.Name = text
		if s.dialog == dialogSenderName {
			s.dialog = dialogSenderPhone
		} else {
			s.dialog = dialogRecipientPhone
		}
		b.send(chatID, "Phone number:")

	case dialogSenderPhone:
		s.partyDraft.Phone = text
		b.continueParty(chatID, s, s.wizard.ContinueSender)

	case dialogRecipientPhone:
		s.partyDraft.Phone = text
		s.dialog = dialogRecipientLandmark
		kb := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Skip", cbSkipLandmark)))
		b.sendWithKeyboard(chatID, "Landmark near the recipient (optional):", kb)

	case dialogRecipientLandmark:
		s.partyDraft.Landmark = text
		b.continueParty(chatID, s, s.wizard.ContinueRecipient)

	case dialogProfileName, dialogProfilePhone, dialogProfileCity:
		b.handleProfileInput(ctx, chatID, s, text)

	default:
		if s.wizard != nil {
			b.send(chatID, "Use the buttons of the current step, /back or /cancel.")
			return
		}
		b.send(chatID, "I did not understand that. Use /help")
	}
}

// forgetSecret удаляет сообщение с паролем из чата.
func (b *Bot) forgetSecret(chatID int64, messageID int) {
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		b.log.Debug("не удалось удалить сообщение с паролем", zap.Error(err))
	}
}

func (b *Bot) submitLogin(ctx context.Context, chatID int64, s *Session) {
	email, password := s.email, s.password
	s.resetForm()

	if err := auth.ValidateLogin(email, password); err != nil {
		b.showError(chatID, err)
		b.send(chatID, "Try /login again.")
		return
	}

	user, err := b.backend.SignIn(ctx, strings.TrimSpace(email), password, chatID)
	if err != nil {
		b.log.Info("вход не удался", zap.Int64("chat_id", chatID), zap.Error(err))
		b.showError(chatID, err)
		b.send(chatID, "Try /login again.")
		return
	}
	s.User = user
	b.log.Info("пользователь вошёл", zap.Int64("chat_id", chatID), zap.String("user_id", user.ID))
	b.send(chatID, "Signed in as "+user.Email+". Use /send to send a parcel.")
}

func (b *Bot) submitSignup(ctx context.Context, chatID int64, s *Session, confirm string) {
	email, password := s.email, s.password
	s.resetForm()

	if err := auth.ValidateSignUp(email, password, confirm); err != nil {
		b.showError(chatID, err)
		b.send(chatID, "Try /signup again.")
		return
	}

	user, err := b.backend.SignUp(ctx, strings.TrimSpace(email), password, chatID)
	if err != nil {
		b.log.Info("регистрация не удалась", zap.Int64("chat_id", chatID), zap.Error(err))
		b.showError(chatID, err)
		b.send(chatID, "Try /signup again.")
		return
	}
	s.User = user
	b.log.Info("пользователь зарегистрирован", zap.Int64("chat_id", chatID), zap.String("user_id", user.ID))
	b.send(chatID, "Account created, you are signed in as "+user.Email+".\nUse /editprofile to fill in your profile or /send to send a parcel.")
}

// continueParty пишет срез отправителя/получателя в мастер.
// При ошибке валидации шаг начинается заново.
func (b *Bot) continueParty(chatID int64, s *Session, next func(wizard.PartyDraft) error) {
	if s.wizard == nil {
		s.dialog = dialogNone
		return
	}
	if err := next(s.partyDraft); err != nil {
		b.showError(chatID, err)
		b.showStep(chatID, s)
		return
	}
	b.showStep(chatID, s)
}
