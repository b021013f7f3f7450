package wizard

import (
	"strings"
	"unicode/utf8"

	"github.com/natindo/ParcelBot/internal/models"
	"github.com/natindo/ParcelBot/internal/pricing"
)

// Step — номер шага мастера, от 1 до TotalSteps.
type Step int

const (
	StepSize Step = iota + 1
	StepDeliveryMethod
	StepSender
	StepRecipient
	StepSummary
)

const TotalSteps = int(StepSummary)

const (
	MinNameLength  = 2
	MinPhoneLength = 7
)

func (s Step) String() string {
	switch s {
	case StepSize:
		return "size"
	case StepDeliveryMethod:
		return "delivery_method"
	case StepSender:
		return "sender"
	case StepRecipient:
		return "recipient"
	case StepSummary:
		return "summary"
	default:
		return "unknown"
	}
}

// Title — заголовок шага для пользователя.
func (s Step) Title() string {
	switch s {
	case StepSize:
		return "Parcel details"
	case StepDeliveryMethod:
		return "Delivery method"
	case StepSender:
		return "Sender"
	case StepRecipient:
		return "Recipient"
	case StepSummary:
		return "Review & Pay"
	default:
		return ""
	}
}

// SizeDraft — локальный ввод первого шага до нажатия «Continue».
type SizeDraft struct {
	Size     models.SizeClass
	Weight   models.WeightRange
	Category string
}

// Ready — можно ли нажать «Continue».
func (d SizeDraft) Ready() bool {
	return d.Size != "" && d.Weight != ""
}

func (d SizeDraft) EstimatedPrice() int {
	if !d.Ready() {
		return 0
	}
	return pricing.ComputeBasePrice(d.Size, d.Weight)
}

// ValidateSize проверяет первый шаг: размер и вес обязательны,
// значения должны быть из каталога.
func ValidateSize(d SizeDraft) error {
	if !d.Ready() {
		return ErrSizeRequired
	}
	if _, ok := pricing.SizeByID(string(d.Size)); !ok {
		return ErrUnknownSize
	}
	if _, ok := pricing.WeightByID(string(d.Weight)); !ok {
		return ErrUnknownWeight
	}
	if d.Category != "" && !pricing.IsCategory(d.Category) {
		return ErrUnknownCategory
	}
	return nil
}

// PartyDraft — ввод шагов отправителя и получателя.
type PartyDraft struct {
	Name     string
	Phone    string
	Landmark string
}

// ValidateParty: имя не короче 2 символов, телефон не короче 7 (после trim).
func ValidateParty(d PartyDraft) error {
	if utf8.RuneCountInString(strings.TrimSpace(d.Name)) < MinNameLength {
		return ErrNameTooShort
	}
	if utf8.RuneCountInString(strings.TrimSpace(d.Phone)) < MinPhoneLength {
		return ErrPhoneTooShort
	}
	return nil
}

// DraftSize заполняет черновик первого шага из Store (повторный заход на шаг).
func (c *Controller) DraftSize() SizeDraft {
	st := c.store.State()
	if st.Parcel == nil {
		return SizeDraft{}
	}
	return SizeDraft{Size: st.Parcel.Size, Weight: st.Parcel.Weight, Category: st.Parcel.Category}
}

func (c *Controller) DraftSender() PartyDraft {
	st := c.store.State()
	if st.Sender == nil {
		return PartyDraft{}
	}
	return PartyDraft{Name: st.Sender.Name, Phone: st.Sender.Phone}
}

func (c *Controller) DraftRecipient() PartyDraft {
	st := c.store.State()
	if st.Recipient == nil {
		return PartyDraft{}
	}
	return PartyDraft{Name: st.Recipient.Name, Phone: st.Recipient.Phone, Landmark: st.Recipient.Landmark}
}

// ContinueSize записывает ParcelDetails и переходит на шаг 2.
// При ошибке ни Store, ни номер шага не меняются.
func (c *Controller) ContinueSize(d SizeDraft) error {
	if c.current != StepSize {
		return ErrWrongStep
	}
	if err := ValidateSize(d); err != nil {
		return err
	}
	c.store.SetParcelDetails(models.ParcelDetails{
		Size:     d.Size,
		Weight:   d.Weight,
		Category: d.Category,
	})
	c.Next()
	return nil
}

// SelectDeliveryMethod сразу пишет выбор в Store, как при нажатии на карточку.
func (c *Controller) SelectDeliveryMethod(id string) error {
	if c.current != StepDeliveryMethod {
		return ErrWrongStep
	}
	m, ok := pricing.DeliveryMethodByID(id)
	if !ok {
		return ErrUnknownMethod
	}
	c.store.SetDeliveryMethod(m)
	return nil
}

// ContinueDeliveryMethod подтверждает выбранный метод (или первый из каталога).
func (c *Controller) ContinueDeliveryMethod() error {
	if c.current != StepDeliveryMethod {
		return ErrWrongStep
	}
	if c.store.State().DeliveryMethod == nil {
		c.store.SetDeliveryMethod(pricing.DefaultDeliveryMethod())
	}
	c.Next()
	return nil
}

func (c *Controller) ContinueSender(d PartyDraft) error {
	if c.current != StepSender {
		return ErrWrongStep
	}
	if err := ValidateParty(d); err != nil {
		return err
	}
	c.store.SetSender(models.SenderInfo{
		Name:  strings.TrimSpace(d.Name),
		Phone: strings.TrimSpace(d.Phone),
	})
	c.Next()
	return nil
}

func (c *Controller) ContinueRecipient(d PartyDraft) error {
	if c.current != StepRecipient {
		return ErrWrongStep
	}
	if err := ValidateParty(d); err != nil {
		return err
	}
	c.store.SetRecipient(models.RecipientInfo{
		Name:     strings.TrimSpace(d.Name),
		Phone:    strings.TrimSpace(d.Phone),
		Landmark: strings.TrimSpace(d.Landmark),
	})
	c.Next()
	return nil
}
