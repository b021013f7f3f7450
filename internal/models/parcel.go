package models

// SizeClass — габаритный класс посылки.
type SizeClass string

const (
	SizeSmall  SizeClass = "small"
	SizeMedium SizeClass = "medium"
	SizeLarge  SizeClass = "large"
)

// WeightRange — весовой диапазон ("корзина"), например "1-5kg".
type WeightRange string

const (
	Weight0To1   WeightRange = "0-1kg"
	Weight1To5   WeightRange = "1-5kg"
	Weight5To10  WeightRange = "5-10kg"
	Weight10To25 WeightRange = "10-25kg"
)

// ParcelDetails заполняется на первом шаге мастера.
type ParcelDetails struct {
	Size     SizeClass
	Weight   WeightRange
	Category string // необязательно
}

// DeliveryMethod — способ передачи посылки из фиксированного каталога.
type DeliveryMethod struct {
	ID             string `json:"id"`
	Label          string `json:"label"`
	AdditionalCost int    `json:"additional_cost"`
	Description    string `json:"description"`
}

type SenderInfo struct {
	Name  string
	Phone string
}

type RecipientInfo struct {
	Name     string
	Phone    string
	Landmark string // необязательно
}
