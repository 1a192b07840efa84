package model

const orderLayoutV1 = 1

// OrderStatus is the order state machine: Placed -> {Fulfilled, Cancelled}.
// Terminal states accept no further transitions.
type OrderStatus uint8

const (
	OrderPlaced OrderStatus = iota
	OrderFulfilled
	OrderCancelled
)

// ParseOrderStatus maps a wire value to a recognized status.
func ParseOrderStatus(v uint8) (OrderStatus, bool) {
	switch OrderStatus(v) {
	case OrderPlaced, OrderFulfilled, OrderCancelled:
		return OrderStatus(v), true
	}
	return 0, false
}

// Terminal reports whether no further transition is accepted.
func (s OrderStatus) Terminal() bool {
	return s == OrderFulfilled || s == OrderCancelled
}

func (s OrderStatus) String() string {
	switch s {
	case OrderPlaced:
		return "placed"
	case OrderFulfilled:
		return "fulfilled"
	case OrderCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Order is a customer order record, created atomically with its payment.
// UpdatedAt is absent until the first status transition.
type Order struct {
	OrderID      uint64      `json:"order_id"`
	Customer     Identity    `json:"customer"`
	CustomerName string      `json:"customer_name"`
	Items        []uint64    `json:"items"`
	Total        uint64      `json:"total"`
	Status       OrderStatus `json:"status"`
	CreatedAt    int64       `json:"created_at"`
	UpdatedAt    *int64      `json:"updated_at,omitempty"`
	Bump         uint8       `json:"bump"`
}

// Encode serializes the record to its versioned binary layout.
func (o *Order) Encode() []byte {
	w := newRecordWriter(orderLayoutV1)
	w.u64(o.OrderID)
	w.str(string(o.Customer))
	w.str(o.CustomerName)
	w.u64s(o.Items)
	w.u64(o.Total)
	w.u8(uint8(o.Status))
	w.i64(o.CreatedAt)
	w.optI64(o.UpdatedAt)
	w.u8(o.Bump)
	return w.bytes()
}

// DecodeOrder deserializes an order record.
func DecodeOrder(data []byte) (*Order, error) {
	r, err := newRecordReader(data, orderLayoutV1)
	if err != nil {
		return nil, err
	}
	o := &Order{
		OrderID:      r.u64(),
		Customer:     Identity(r.str()),
		CustomerName: r.str(),
		Items:        r.u64list(),
		Total:        r.u64(),
		Status:       OrderStatus(r.u8()),
		CreatedAt:    r.i64(),
		UpdatedAt:    r.optI64(),
		Bump:         r.u8(),
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return o, nil
}
