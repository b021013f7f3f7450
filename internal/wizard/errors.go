package wizard

import "errors"

// Тексты ошибок показываются пользователю как есть.
var (
	ErrWrongStep       = errors.New("This action is not available on the current step.")
	ErrSizeRequired    = errors.New("Please choose a size and a weight range.")
	ErrUnknownSize     = errors.New("Unknown parcel size.")
	ErrUnknownWeight   = errors.New("Unknown weight range.")
	ErrUnknownCategory = errors.New("Unknown category.")
	ErrUnknownMethod   = errors.New("Unknown delivery method.")
	ErrNameTooShort    = errors.New("Name must be at least 2 characters.")
	ErrPhoneTooShort   = errors.New("Phone number must be at least 7 characters.")
	ErrCannotSubmit    = errors.New("Please complete all steps and accept the terms and conditions.")
	ErrSubmitting      = errors.New("Your parcel is already being submitted.")
	ErrNotSubmitting   = errors.New("There is no pending submission.")
)
