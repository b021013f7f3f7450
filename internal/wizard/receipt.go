package wizard

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// Receipt выдаётся после отправки: данные для отслеживания и передачи посылки.
type Receipt struct {
	TrackingID   string
	ShipmentCode string
	SenderPIN    string
	BasePrice    int
	ExtraFees    int
	TotalPrice   int
}

func NewReceipt(st State) (Receipt, error) {
	code, err := randomDigits(6)
	if err != nil {
		return Receipt{}, fmt.Errorf("shipment code: %w", err)
	}
	pin, err := randomDigits(4)
	if err != nil {
		return Receipt{}, fmt.Errorf("sender pin: %w", err)
	}
	return Receipt{
		TrackingID:   uuid.NewString(),
		ShipmentCode: code,
		SenderPIN:    pin,
		BasePrice:    st.BasePrice(),
		ExtraFees:    st.ExtraFees(),
		TotalPrice:   st.TotalPrice(),
	}, nil
}

func randomDigits(n int) (string, error) {
	buf := make([]byte, n)
	for i := range buf {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		buf[i] = byte('0' + d.Int64())
	}
	return string(buf), nil
}
