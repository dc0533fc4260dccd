package domain

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

var (
	ErrBlankPersonName  = errors.New("nome da pessoa é obrigatório")
	ErrQuantityRequired = errors.New("quantidade é obrigatória")
	ErrInvalidQuantity  = errors.New("quantidade deve ser maior que zero")
)

// Order models a delivery request ("pedido").
type Order struct {
	ID            int64
	PersonName    string
	Quantity      int32
	PaymentMethod string
	Delivered     bool
	OrderDate     time.Time
}

// NewOrder validates and constructs a pending order placed at orderDate.
func NewOrder(personName string, quantity int32, paymentMethod string, orderDate time.Time) (*Order, error) {
	order := &Order{
		PersonName:    personName,
		Quantity:      quantity,
		PaymentMethod: paymentMethod,
		OrderDate:     orderDate,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if strings.TrimSpace(o.PersonName) == "" {
		return ErrBlankPersonName
	}
	if o.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// Revise replaces the client-editable fields. OrderDate and ID are left untouched.
func (o *Order) Revise(personName string, quantity int32, paymentMethod string, delivered bool) error {
	revised := *o
	revised.PersonName = personName
	revised.Quantity = quantity
	revised.PaymentMethod = paymentMethod
	revised.Delivered = delivered
	if err := revised.Validate(); err != nil {
		return err
	}
	*o = revised
	return nil
}

// MarkDelivered flags the order as fulfilled.
func (o *Order) MarkDelivered() {
	o.Delivered = true
}

// SearchKey returns the case-folded person name used for name lookups.
func (o *Order) SearchKey() string {
	return FoldName(o.PersonName)
}

// FoldName applies Unicode case folding so "JOÃO" and "joão" compare equal.
func FoldName(name string) string {
	return cases.Fold().String(name)
}
