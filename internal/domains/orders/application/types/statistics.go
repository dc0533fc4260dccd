package types

// Statistics summarises the order book.
type Statistics struct {
	Total     int64
	Pending   int64
	Delivered int64
}
