package wizard

import (
	"github.com/natindo/ParcelBot/internal/models"
	"github.com/natindo/ParcelBot/internal/pricing"
)

// State — накопленные срезы мастера. nil означает «ещё не заполнено».
// Цены не хранятся, а считаются при каждом чтении.
type State struct {
	Parcel         *models.ParcelDetails
	DeliveryMethod *models.DeliveryMethod
	Sender         *models.SenderInfo
	Recipient      *models.RecipientInfo
}

func (s State) BasePrice() int {
	if s.Parcel == nil {
		return 0
	}
	return pricing.ComputeBasePrice(s.Parcel.Size, s.Parcel.Weight)
}

// ExtraFees — надбавка выбранного способа доставки.
func (s State) ExtraFees() int {
	if s.DeliveryMethod == nil {
		return 0
	}
	return s.DeliveryMethod.AdditionalCost
}

func (s State) TotalPrice() int {
	return pricing.ComputeTotal(s.BasePrice(), s.ExtraFees())
}

// IsEmpty сообщает, что ни один срез не заполнен.
func (s State) IsEmpty() bool {
	return s.Parcel == nil && s.DeliveryMethod == nil && s.Sender == nil && s.Recipient == nil
}
