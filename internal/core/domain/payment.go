package domain

import "strings"

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// CardFee is deducted from the unit price on card sales. It is the
// processor's cut borne by the merchant, not a surcharge to the customer.
const CardFee int64 = 5000

var paymentAliases = map[string]PaymentMethod{
	"cash":         PaymentCash,
	"tunai":        PaymentCash,
	"card":         PaymentCard,
	"credit card":  PaymentCard,
	"kartu kredit": PaymentCard,
}

// ParsePaymentMethod maps user input onto a known method.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m, ok := paymentAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", &InvalidPaymentMethodError{Method: s}
	}
	return m, nil
}

// Charge returns the amount recorded for a sale at unitPrice.
func Charge(method PaymentMethod, unitPrice int64) (int64, error) {
	switch method {
	case PaymentCash:
		return unitPrice, nil
	case PaymentCard:
		return unitPrice - CardFee, nil
	default:
		return 0, &InvalidPaymentMethodError{Method: string(method)}
	}
}
