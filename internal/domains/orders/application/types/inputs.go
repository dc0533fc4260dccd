package types

// OrderInput carries the client-editable order fields for create and update.
// Nil pointers mark fields the client did not send.
type OrderInput struct {
	PersonName    string
	Quantity      *int32
	PaymentMethod string
	Delivered     *bool
}
