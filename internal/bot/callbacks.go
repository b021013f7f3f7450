package bot

import (
	"context"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/natindo/ParcelBot/internal/models"
	"github.com/natindo/ParcelBot/internal/wizard"
)

const (
	cbTaskDone   = "task_done:"
	cbTaskDelete = "task_del:"
)

// handleCallbackQuery обрабатывает клики по inline-кнопкам
func (b *Bot) handleCallbackQuery(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil || cq.Message.Chat == nil {
		b.answer(cq.ID, "")
		return
	}
	chatID := cq.Message.Chat.ID
	s := b.session(chatID)
	data := cq.Data

	if strings.HasPrefix(data, cbTaskDone) || strings.HasPrefix(data, cbTaskDelete) {
		b.handleTaskCallback(ctx, chatID, s, cq)
		return
	}

	if s.wizard == nil {
		b.answer(cq.ID, "This parcel form is closed. Use /send to start a new one.")
		return
	}
	ctrl := s.wizard
	msgID := cq.Message.MessageID

	switch {
	case data == cbCancel:
		if err := s.closeWizard(); err != nil {
			b.answer(cq.ID, err.Error())
			return
		}
		b.answer(cq.ID, "")
		b.editText(chatID, msgID, "Parcel form closed. Nothing was sent.")

	case strings.HasPrefix(data, cbBack):
		if !b.onStep(cq, ctrl, data, cbBack) {
			return
		}
		if !ctrl.Back() {
			b.answer(cq.ID, "You are on the first step.")
			return
		}
		b.answer(cq.ID, "")
		b.showStep(chatID, s)

	case strings.HasPrefix(data, cbSize), strings.HasPrefix(data, cbWeight), strings.HasPrefix(data, cbCategory):
		if ctrl.Current() != wizard.StepSize {
			b.answer(cq.ID, wizard.ErrWrongStep.Error())
			return
		}
		b.applySizeChoice(s, data)
		b.answer(cq.ID, "")
		b.refreshStep(chatID, msgID, s)

	case strings.HasPrefix(data, cbMethod):
		if err := ctrl.SelectDeliveryMethod(strings.TrimPrefix(data, cbMethod)); err != nil {
			b.answer(cq.ID, err.Error())
			return
		}
		b.answer(cq.ID, "")
		b.refreshStep(chatID, msgID, s)

	case strings.HasPrefix(data, cbContinue):
		if !b.onStep(cq, ctrl, data, cbContinue) {
			return
		}
		var err error
		switch ctrl.Current() {
		case wizard.StepSize:
			err = ctrl.ContinueSize(s.sizeDraft)
		case wizard.StepDeliveryMethod:
			err = ctrl.ContinueDeliveryMethod()
		default:
			err = wizard.ErrWrongStep
		}
		if err != nil {
			b.answer(cq.ID, err.Error())
			return
		}
		b.answer(cq.ID, "")
		b.showStep(chatID, s)

	case strings.HasPrefix(data, cbKeep):
		if !b.onStep(cq, ctrl, data, cbKeep) {
			return
		}
		var err error
		switch ctrl.Current() {
		case wizard.StepSender:
			err = ctrl.ContinueSender(ctrl.DraftSender())
		case wizard.StepRecipient:
			err = ctrl.ContinueRecipient(ctrl.DraftRecipient())
		default:
			err = wizard.ErrWrongStep
		}
		if err != nil {
			b.answer(cq.ID, err.Error())
			return
		}
		b.answer(cq.ID, "")
		b.showStep(chatID, s)

	case data == cbSkipLandmark:
		if s.dialog != dialogRecipientLandmark {
			b.answer(cq.ID, wizard.ErrWrongStep.Error())
			return
		}
		b.answer(cq.ID, "")
		s.partyDraft.Landmark = ""
		b.continueParty(chatID, s, ctrl.ContinueRecipient)

	case data == cbTerms:
		if _, err := ctrl.ToggleTerms(); err != nil {
			b.answer(cq.ID, err.Error())
			return
		}
		b.answer(cq.ID, "")
		b.refreshStep(chatID, msgID, s)

	case data == cbPay:
		b.startSubmit(chatID, msgID, s, cq.ID)

	default:
		b.answer(cq.ID, "Unknown action")
	}
}

// onStep проверяет, что кнопка нажата в сообщении текущего шага.
func (b *Bot) onStep(cq *tgbotapi.CallbackQuery, ctrl *wizard.Controller, data, prefix string) bool {
	step, ok := parseStepData(data, prefix)
	if !ok || step != ctrl.Current() {
		b.answer(cq.ID, wizard.ErrWrongStep.Error())
		return false
	}
	return true
}

// applySizeChoice меняет только локальный черновик шага 1; в Store он
// попадёт по кнопке «Continue».
func (b *Bot) applySizeChoice(s *Session, data string) {
	switch {
	case strings.HasPrefix(data, cbSize):
		s.sizeDraft.Size = models.SizeClass(strings.TrimPrefix(data, cbSize))
	case strings.HasPrefix(data, cbWeight):
		s.sizeDraft.Weight = models.WeightRange(strings.TrimPrefix(data, cbWeight))
	case strings.HasPrefix(data, cbCategory):
		c := strings.TrimPrefix(data, cbCategory)
		// повторное нажатие снимает выбор категории
		if s.sizeDraft.Category == c {
			c = ""
		}
		s.sizeDraft.Category = c
	}
}

// startSubmit включает «загрузку» и запускает таймер имитации оплаты.
// Результат вернётся в цикл Run событием submitDone.
func (b *Bot) startSubmit(chatID int64, msgID int, s *Session, callbackID string) {
	ctrl := s.wizard
	if err := ctrl.BeginSubmit(); err != nil {
		b.answer(callbackID, err.Error())
		return
	}
	b.answer(callbackID, "Processing payment…")
	b.refreshStep(chatID, msgID, s)

	events := b.events
	time.AfterFunc(ctrl.SubmitDelay(), func() {
		events <- submitDone{chatID: chatID}
	})
}

// finishSubmit завершает отправку: квитанция, сброс мастера, выход из формы.
func (b *Bot) finishSubmit(_ context.Context, chatID int64) {
	s, ok := b.sessions[chatID]
	if !ok || s.wizard == nil || !s.wizard.Submitting() {
		return
	}
	receipt, err := s.wizard.FinishSubmit()
	if err != nil {
		b.log.Error("ошибка завершения отправки", zap.Int64("chat_id", chatID), zap.Error(err))
		b.showError(chatID, err)
		return
	}
	s.closeWizard()

	b.log.Info("посылка оформлена",
		zap.Int64("chat_id", chatID),
		zap.String("tracking_id", receipt.TrackingID),
		zap.Int("total_price", receipt.TotalPrice))
	b.send(chatID, receiptText(receipt))
}

func (b *Bot) handleTaskCallback(ctx context.Context, chatID int64, s *Session, cq *tgbotapi.CallbackQuery) {
	if !s.SignedIn() {
		b.answer(cq.ID, "Please /login first.")
		return
	}
	var (
		raw    string
		remove bool
	)
	if strings.HasPrefix(cq.Data, cbTaskDone) {
		raw = strings.TrimPrefix(cq.Data, cbTaskDone)
	} else {
		raw = strings.TrimPrefix(cq.Data, cbTaskDelete)
		remove = true
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		b.answer(cq.ID, "Invalid task ID.")
		return
	}
	b.answer(cq.ID, "")
	if remove {
		b.deleteTask(ctx, chatID, s, id)
	} else {
		b.toggleTask(ctx, chatID, s, id)
	}
}
