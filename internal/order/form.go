package order

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/five82/foodikal/internal/foodikal"
)

// Minimum lengths of the required text fields, in characters.
const (
	MinNameLength    = 2
	MinContactLength = 3
	MinAddressLength = 5
)

// Field identifies a checkout form field.
type Field string

const (
	FieldCart     Field = "cart"
	FieldName     Field = "customer_name"
	FieldContact  Field = "customer_contact"
	FieldAddress  Field = "delivery_address"
	FieldDate     Field = "delivery_date"
	FieldComments Field = "comments"
)

// Form validation messages.
const (
	MsgEmptyCart  = "Ваша корзина пуста. Добавьте товары перед оформлением заказа."
	MsgBadName    = "Пожалуйста, введите корректное имя (минимум 2 символа)."
	MsgBadContact = "Пожалуйста, введите номер телефона или Telegram."
	MsgBadAddress = "Пожалуйста, введите корректный адрес доставки (минимум 5 символов)."
	MsgNoDate     = "Пожалуйста, выберите дату доставки."
)

// Form is the checkout form as typed by the customer.
type Form struct {
	Name     string
	Contact  string
	Address  string
	Date     string
	Comments string
}

// Trimmed returns the form with surrounding whitespace removed.
func (f Form) Trimmed() Form {
	return Form{
		Name:     strings.TrimSpace(f.Name),
		Contact:  strings.TrimSpace(f.Contact),
		Address:  strings.TrimSpace(f.Address),
		Date:     strings.TrimSpace(f.Date),
		Comments: strings.TrimSpace(f.Comments),
	}
}

// FormError reports the first invalid field of a checkout attempt.
type FormError struct {
	Field   Field
	Message string
}

func (e *FormError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AsFormError unwraps err into a *FormError.
func AsFormError(err error) (*FormError, bool) {
	var fe *FormError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// Validate checks the form in the order the customer sees the fields and
// returns a *FormError for the first problem.
func Validate(f Form, cartEmpty bool) error {
	if cartEmpty {
		return &FormError{Field: FieldCart, Message: MsgEmptyCart}
	}
	f = f.Trimmed()
	switch {
	case utf8.RuneCountInString(f.Name) < MinNameLength:
		return &FormError{Field: FieldName, Message: MsgBadName}
	case utf8.RuneCountInString(f.Contact) < MinContactLength:
		return &FormError{Field: FieldContact, Message: MsgBadContact}
	case utf8.RuneCountInString(f.Address) < MinAddressLength:
		return &FormError{Field: FieldAddress, Message: MsgBadAddress}
	case f.Date == "":
		return &FormError{Field: FieldDate, Message: MsgNoDate}
	}
	return nil
}

// Build assembles the create_order body. promoCode is only sent when a code
// is applied.
func Build(f Form, items []foodikal.OrderItem, promoCode string) foodikal.CreateOrderRequest {
	f = f.Trimmed()
	out := make([]foodikal.OrderItem, len(items))
	copy(out, items)
	return foodikal.CreateOrderRequest{
		CustomerName:    f.Name,
		CustomerContact: f.Contact,
		DeliveryAddress: f.Address,
		DeliveryDate:    f.Date,
		Comments:        f.Comments,
		OrderItems:      out,
		PromoCode:       strings.TrimSpace(promoCode),
	}
}
