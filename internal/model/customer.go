package model

const customerLayoutV1 = 1

// Customer marks that a customer has ordered from a restaurant. Created lazily
// on first order; existence at the derived address is the only state it
// carries.
type Customer struct {
	Initialized bool  `json:"initialized"`
	Bump        uint8 `json:"bump"`
}

// Encode serializes the record to its versioned binary layout.
func (c *Customer) Encode() []byte {
	w := newRecordWriter(customerLayoutV1)
	w.boolean(c.Initialized)
	w.u8(c.Bump)
	return w.bytes()
}

// DecodeCustomer deserializes a customer record.
func DecodeCustomer(data []byte) (*Customer, error) {
	r, err := newRecordReader(data, customerLayoutV1)
	if err != nil {
		return nil, err
	}
	c := &Customer{
		Initialized: r.boolean(),
		Bump:        r.u8(),
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return c, nil
}
