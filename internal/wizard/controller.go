package wizard

import (
	"time"

	"github.com/natindo/ParcelBot/internal/pricing"
)

// DefaultSubmitDelay — имитация отправки заказа (реального вызова нет).
const DefaultSubmitDelay = 900 * time.Millisecond

// Controller ведёт номер текущего шага и действия шагов над Store.
type Controller struct {
	store         *Store
	current       Step
	termsAccepted bool
	submitting    bool
	submitDelay   time.Duration
}

type Option func(*Controller)

func WithSubmitDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.submitDelay = d
		}
	}
}

// NewController начинает прохождение мастера с шага 1.
func NewController(store *Store, opts ...Option) *Controller {
	if store == nil {
		store = NewStore()
	}
	c := &Controller{
		store:       store,
		current:     StepSize,
		submitDelay: DefaultSubmitDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Store() *Store { return c.store }
func (c *Controller) State() State { return c.store.State() }
func (c *Controller) Current() Step { return c.current }
func (c *Controller) Submitting() bool { return c.submitting }

func (c *Controller) SubmitDelay() time.Duration { return c.submitDelay }

// Progress возвращает (текущий шаг, всего шагов) для прогресс-бара.
func (c *Controller) Progress() (int, int) {
	return int(c.current), TotalSteps
}

// Next переходит на следующий шаг. На последнем шаге ничего не делает.
func (c *Controller) Next() bool {
	if c.submitting || int(c.current) >= TotalSteps {
		return false
	}
	c.current++
	c.enter()
	return true
}

// Back возвращается на шаг назад, не очищая срезы.
func (c *Controller) Back() bool {
	if c.submitting || c.current <= StepSize {
		return false
	}
	c.current--
	c.enter()
	return true
}

// enter — действия при входе на шаг.
func (c *Controller) enter() {
	if c.current == StepDeliveryMethod && c.store.State().DeliveryMethod == nil {
		c.store.SetDeliveryMethod(pricing.DefaultDeliveryMethod())
	}
}

// ToggleTerms переключает согласие с условиями на шаге 5.
// Во время отправки согласие не меняется.
func (c *Controller) ToggleTerms() (bool, error) {
	if c.submitting {
		return c.termsAccepted, ErrSubmitting
	}
	if c.current != StepSummary {
		return c.termsAccepted, ErrWrongStep
	}
	c.termsAccepted = !c.termsAccepted
	return c.termsAccepted, nil
}

func (c *Controller) TermsAccepted() bool { return c.termsAccepted }

// CanSubmit: посылка, отправитель, получатель заполнены и условия приняты.
func (c *Controller) CanSubmit() bool {
	st := c.store.State()
	return c.current == StepSummary &&
		st.Parcel != nil && st.Sender != nil && st.Recipient != nil &&
		c.termsAccepted && !c.submitting
}

// BeginSubmit включает состояние загрузки. Повторная отправка
// до FinishSubmit отклоняется.
func (c *Controller) BeginSubmit() error {
	if c.submitting {
		return ErrSubmitting
	}
	if c.current != StepSummary {
		return ErrWrongStep
	}
	if !c.CanSubmit() {
		return ErrCannotSubmit
	}
	c.submitting = true
	return nil
}

// FinishSubmit выдаёт квитанцию, очищает Store и возвращает мастер на шаг 1.
func (c *Controller) FinishSubmit() (Receipt, error) {
	if !c.submitting {
		return Receipt{}, ErrNotSubmitting
	}
	receipt, err := NewReceipt(c.store.State())
	if err != nil {
		c.submitting = false
		return Receipt{}, err
	}
	c.Complete()
	return receipt, nil
}

// Complete сбрасывает состояние и номер шага.
func (c *Controller) Complete() {
	c.submitting = false
	c.termsAccepted = false
	c.store.Reset()
	c.current = StepSize
}

// Cancel — закрытие мастера без отправки. Начатую отправку отменить нельзя.
func (c *Controller) Cancel() error {
	if c.submitting {
		return ErrSubmitting
	}
	c.Complete()
	return nil
}
