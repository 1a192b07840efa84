package model

const adminLayoutV1 = 1

// AdminProfile is a protocol admin record, created by the owner. Removal
// deactivates the profile rather than freeing the slot, so a removed admin's
// history stays readable.
type AdminProfile struct {
	Username  string `json:"username"`
	CreatedAt int64  `json:"created_at"`
	Active    bool   `json:"active"`
	Bump      uint8  `json:"bump"`
}

// Encode serializes the record to its versioned binary layout.
func (a *AdminProfile) Encode() []byte {
	w := newRecordWriter(adminLayoutV1)
	w.str(a.Username)
	w.i64(a.CreatedAt)
	w.boolean(a.Active)
	w.u8(a.Bump)
	return w.bytes()
}

// DecodeAdminProfile deserializes an admin profile record.
func DecodeAdminProfile(data []byte) (*AdminProfile, error) {
	r, err := newRecordReader(data, adminLayoutV1)
	if err != nil {
		return nil, err
	}
	a := &AdminProfile{
		Username:  r.str(),
		CreatedAt: r.i64(),
		Active:    r.boolean(),
		Bump:      r.u8(),
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return a, nil
}
