package pricing

import (
	"testing"

	"github.com/natindo/ParcelBot/internal/models"
)

func TestComputeBasePrice_Table(t *testing.T) {
	cases := []struct {
		size   models.SizeClass
		weight models.WeightRange
		want   int
	}{
		{models.SizeSmall, models.Weight0To1, 25},
		{models.SizeSmall, models.Weight1To5, 30},
		{models.SizeSmall, models.Weight5To10, 38}, // 37.5 округляется вверх
		{models.SizeSmall, models.Weight10To25, 50},
		{models.SizeMedium, models.Weight0To1, 45},
		{models.SizeMedium, models.Weight1To5, 54},
		{models.SizeMedium, models.Weight5To10, 68}, // 67.5
		{models.SizeMedium, models.Weight10To25, 90},
		{models.SizeLarge, models.Weight0To1, 75},
		{models.SizeLarge, models.Weight1To5, 90},
		{models.SizeLarge, models.Weight5To10, 113}, // 112.5
		{models.SizeLarge, models.Weight10To25, 150},
	}
	for _, tc := range cases {
		got := ComputeBasePrice(tc.size, tc.weight)
		if got != tc.want {
			t.Errorf("ComputeBasePrice(%s, %s) = %d, want %d", tc.size, tc.weight, got, tc.want)
		}
		if again := ComputeBasePrice(tc.size, tc.weight); again != got {
			t.Errorf("ComputeBasePrice(%s, %s) is not stable: %d then %d", tc.size, tc.weight, got, again)
		}
	}
}

func TestComputeBasePrice_Fallbacks(t *testing.T) {
	if got := ComputeBasePrice("huge", models.Weight1To5); got != 30 {
		t.Errorf("unknown size: expected small base 25*1.2=30, got %d", got)
	}
	if got := ComputeBasePrice(models.SizeLarge, "100kg"); got != 75 {
		t.Errorf("unknown weight: expected multiplier 1.0 (75), got %d", got)
	}
	if got := ComputeBasePrice("", ""); got != 25 {
		t.Errorf("empty inputs: expected 25, got %d", got)
	}
}

func TestComputeTotal(t *testing.T) {
	if got := ComputeTotal(54, 0); got != 54 {
		t.Errorf("zero surcharge must keep base, got %d", got)
	}
	prev := ComputeTotal(54, 0)
	for surcharge := 1; surcharge <= 50; surcharge++ {
		got := ComputeTotal(54, surcharge)
		if got < prev {
			t.Fatalf("total decreased at surcharge %d: %d < %d", surcharge, got, prev)
		}
		prev = got
	}
	if got := ComputeTotal(54, 10); got != 64 {
		t.Errorf("expected 64, got %d", got)
	}
}

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice(64); got != "64 kr" {
		t.Errorf("unexpected format %q", got)
	}
}

func TestCatalogLookups(t *testing.T) {
	if _, ok := SizeByID("medium"); !ok {
		t.Error("medium must be in the size catalog")
	}
	if _, ok := WeightByID("5-10kg"); !ok {
		t.Error("5-10kg must be in the weight catalog")
	}
	m, ok := DeliveryMethodByID("pickup")
	if !ok || m.AdditionalCost != 15 {
		t.Errorf("unexpected pickup method: %+v (found=%v)", m, ok)
	}
	if _, ok := DeliveryMethodByID("teleport"); ok {
		t.Error("unknown delivery method must not be found")
	}
	if DefaultDeliveryMethod().ID != "self" {
		t.Errorf("default delivery method must be the first catalog entry")
	}
	for _, m := range DeliveryMethods {
		if m.AdditionalCost < 0 {
			t.Errorf("negative surcharge for %s", m.ID)
		}
	}
	if !IsCategory("Fragile") || IsCategory("Weapons") {
		t.Error("category check is wrong")
	}
}
