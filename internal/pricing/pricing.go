package pricing

import (
	"fmt"
	"math"

	"github.com/natindo/ParcelBot/internal/models"
)

var basePrices = map[models.SizeClass]float64{
	models.SizeSmall:  25,
	models.SizeMedium: 45,
	models.SizeLarge:  75,
}

var weightMultipliers = map[models.WeightRange]float64{
	models.Weight0To1:   1.0,
	models.Weight1To5:   1.2,
	models.Weight5To10:  1.5,
	models.Weight10To25: 2.0,
}

const (
	fallbackBase       = 25
	fallbackMultiplier = 1.0
)

// ComputeBasePrice возвращает базовую цену по габаритам и весу.
// Неизвестный размер считается как small, неизвестный вес — с множителем 1.0.
func ComputeBasePrice(size models.SizeClass, weight models.WeightRange) int {
	base, ok := basePrices[size]
	if !ok {
		base = fallbackBase
	}
	multiplier, ok := weightMultipliers[weight]
	if !ok {
		multiplier = fallbackMultiplier
	}
	return int(math.Round(base * multiplier))
}

// ComputeTotal складывает базовую цену и надбавку за способ доставки.
func ComputeTotal(base, surcharge int) int {
	return base + surcharge
}

func FormatPrice(amount int) string {
	return fmt.Sprintf("%d kr", amount)
}
