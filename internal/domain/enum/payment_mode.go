package enum

import "fmt"

// PaymentMode is how a bill was settled.
type PaymentMode string

const (
	PaymentModeCash PaymentMode = "CASH"
	PaymentModeUPI  PaymentMode = "UPI"
)

func (m PaymentMode) Valid() bool {
	return m == PaymentModeCash || m == PaymentModeUPI
}

func (m PaymentMode) String() string {
	return string(m)
}

// ParsePaymentMode converts a string into a PaymentMode, rejecting unknown values.
func ParsePaymentMode(s string) (PaymentMode, error) {
	m := PaymentMode(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown payment mode %q", s)
	}
	return m, nil
}
