package pricing

import "github.com/natindo/ParcelBot/internal/models"

type SizeOption struct {
	ID         models.SizeClass
	Label      string
	Dimensions string
}

type WeightOption struct {
	ID    models.WeightRange
	Label string
}

var Sizes = []SizeOption{
	{ID: models.SizeSmall, Label: "Small", Dimensions: "30×20×10 cm"},
	{ID: models.SizeMedium, Label: "Medium", Dimensions: "50×40×30 cm"},
	{ID: models.SizeLarge, Label: "Large", Dimensions: "80×60×50 cm"},
}

var WeightRanges = []WeightOption{
	{ID: models.Weight0To1, Label: "0 – 1 kg"},
	{ID: models.Weight1To5, Label: "1 – 5 kg"},
	{ID: models.Weight5To10, Label: "5 – 10 kg"},
	{ID: models.Weight10To25, Label: "10 – 25 kg"},
}

var Categories = []string{"Document", "Box", "Food", "Electronics", "Fragile", "Other"}

// DeliveryMethods — фиксированный каталог. Первый элемент выбирается по умолчанию.
var DeliveryMethods = []models.DeliveryMethod{
	{
		ID:             "self",
		Label:          "Drop-off at agent",
		AdditionalCost: 0,
		Description:    "Bring the parcel to a verified agent near you.",
	},
	{
		ID:             "pickup",
		Label:          "Home pickup",
		AdditionalCost: 15,
		Description:    "A courier collects the parcel from your door.",
	},
}

func SizeByID(id string) (SizeOption, bool) {
	for _, s := range Sizes {
		if string(s.ID) == id {
			return s, true
		}
	}
	return SizeOption{}, false
}

func WeightByID(id string) (WeightOption, bool) {
	for _, w := range WeightRanges {
		if string(w.ID) == id {
			return w, true
		}
	}
	return WeightOption{}, false
}

func DeliveryMethodByID(id string) (models.DeliveryMethod, bool) {
	for _, m := range DeliveryMethods {
		if m.ID == id {
			return m, true
		}
	}
	return models.DeliveryMethod{}, false
}

// DefaultDeliveryMethod возвращает первый метод каталога.
func DefaultDeliveryMethod() models.DeliveryMethod {
	return DeliveryMethods[0]
}

func IsCategory(c string) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}
