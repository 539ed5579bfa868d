package order

import (
	"errors"
	"fmt"

	"github.com/five82/foodikal/internal/foodikal"
)

// PromoDetailKey is the details entry the service uses to reject a promo code
// at order time.
const PromoDetailKey = "promo_code"

// MsgPromoRejected is shown on the form when the order failed because of the
// promo code.
const MsgPromoRejected = "Промокод недействителен. Пожалуйста, проверьте код или продолжите без промокода."

// Result is the customer-facing interpretation of a submit.
type Result struct {
	// Success is set when the order was accepted.
	Success bool
	// Message is shown in the form message area.
	Message string
	// PromoError is the service's promo complaint, if the order failed
	// because of the code.
	PromoError string
}

// SuccessMessage is the confirmation shown after an accepted order.
func SuccessMessage(total int) string {
	return fmt.Sprintf("Заказ успешно создан! Итого: %d RSD. Наш менеджер свяжется с вами для подтверждения.", total)
}

// FailureMessage is the generic message for a rejected or failed order.
func FailureMessage(reason string) string {
	return fmt.Sprintf("Ошибка при создании заказа: %s. Пожалуйста, попробуйте еще раз или свяжитесь с нами напрямую.", reason)
}

// Outcome interprets the result of CreateOrder.
func Outcome(conf foodikal.OrderConfirmation, err error) Result {
	if err == nil {
		return Result{Success: true, Message: SuccessMessage(conf.TotalPrice)}
	}
	var apiErr *foodikal.APIError
	if errors.As(err, &apiErr) {
		if detail, ok := apiErr.Detail(PromoDetailKey); ok {
			return Result{Message: MsgPromoRejected, PromoError: detail}
		}
		return Result{Message: FailureMessage(apiErr.Message)}
	}
	return Result{Message: FailureMessage(err.Error())}
}
