package model

const protocolLayoutV1 = 1

// Protocol is the global singleton: who owns the protocol and whether tenant
// mutations are locked. Existence is structural — the slot either holds valid
// data or it does not.
type Protocol struct {
	Owner  Identity `json:"owner"`
	Locked bool     `json:"locked"`
	Bump   uint8    `json:"bump"`
}

// Encode serializes the record to its versioned binary layout.
func (p *Protocol) Encode() []byte {
	w := newRecordWriter(protocolLayoutV1)
	w.str(string(p.Owner))
	w.boolean(p.Locked)
	w.u8(p.Bump)
	return w.bytes()
}

// DecodeProtocol deserializes a protocol record.
func DecodeProtocol(data []byte) (*Protocol, error) {
	r, err := newRecordReader(data, protocolLayoutV1)
	if err != nil {
		return nil, err
	}
	p := &Protocol{
		Owner:  Identity(r.str()),
		Locked: r.boolean(),
		Bump:   r.u8(),
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return p, nil
}
