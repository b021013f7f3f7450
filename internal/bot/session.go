package bot

import (
	"github.com/natindo/ParcelBot/internal/models"
	"github.com/natindo/ParcelBot/internal/wizard"
)

// dialog — какой текстовый ввод бот ждёт от пользователя.
type dialog int

const (
	dialogNone dialog = iota
	dialogLoginEmail
	dialogLoginPassword
	dialogSignupEmail
	dialogSignupPassword
	dialogSignupConfirm
	dialogSenderName
	dialogSenderPhone
	dialogRecipientName
	dialogRecipientPhone
	dialogRecipientLandmark
	dialogProfileName
	dialogProfilePhone
	dialogProfileCity
)

// Session — состояние одного чата.
type Session struct {
	User   *models.User
	dialog dialog

	// форма входа/регистрации
	email    string
	password string

	// мастер отправки посылки; nil, если мастер закрыт
	wizard     *wizard.Controller
	sizeDraft  wizard.SizeDraft
	partyDraft wizard.PartyDraft

	profileDraft models.Profile
}

func (s *Session) SignedIn() bool {
	return s.User != nil
}

func (s *Session) resetForm() {
	s.dialog = dialogNone
	s.email = ""
	s.password = ""
}

// closeWizard сбрасывает Store и закрывает мастер.
// Пока идёт отправка, мастер не закрывается.
func (s *Session) closeWizard() error {
	if s.wizard != nil {
		if err := s.wizard.Cancel(); err != nil {
			return err
		}
	}
	s.wizard = nil
	s.sizeDraft = wizard.SizeDraft{}
	s.partyDraft = wizard.PartyDraft{}
	if s.dialog >= dialogSenderName && s.dialog <= dialogRecipientLandmark {
		s.dialog = dialogNone
	}
	return nil
}
