package model

import "hestia-ledger-api/pkg/addr"

const employeeLayoutV1 = 1

// EmployeeRole ranks an employee within a restaurant. Order matters: roles
// above TeamMember may update order status.
type EmployeeRole uint8

const (
	RoleTeamMember EmployeeRole = iota
	RoleTeamLeader
	RoleManager
	RoleDirector
)

// ParseEmployeeRole maps a wire value to a recognized role.
func ParseEmployeeRole(v uint8) (EmployeeRole, bool) {
	switch EmployeeRole(v) {
	case RoleTeamMember, RoleTeamLeader, RoleManager, RoleDirector:
		return EmployeeRole(v), true
	}
	return 0, false
}

func (r EmployeeRole) String() string {
	switch r {
	case RoleTeamMember:
		return "team_member"
	case RoleTeamLeader:
		return "team_leader"
	case RoleManager:
		return "manager"
	case RoleDirector:
		return "director"
	}
	return "unknown"
}

// Employee is a staff record scoped to a restaurant, one per
// (restaurant, wallet) pair.
type Employee struct {
	Wallet      Identity     `json:"wallet"`
	Restaurant  addr.Address `json:"restaurant"`
	Role        EmployeeRole `json:"role"`
	Username    string       `json:"username"`
	Initialized bool         `json:"initialized"`
	Bump        uint8        `json:"bump"`
}

// Encode serializes the record to its versioned binary layout.
func (e *Employee) Encode() []byte {
	w := newRecordWriter(employeeLayoutV1)
	w.str(string(e.Wallet))
	w.str(string(e.Restaurant))
	w.u8(uint8(e.Role))
	w.str(e.Username)
	w.boolean(e.Initialized)
	w.u8(e.Bump)
	return w.bytes()
}

// DecodeEmployee deserializes an employee record.
func DecodeEmployee(data []byte) (*Employee, error) {
	r, err := newRecordReader(data, employeeLayoutV1)
	if err != nil {
		return nil, err
	}
	e := &Employee{
		Wallet:      Identity(r.str()),
		Restaurant:  addr.Address(r.str()),
		Role:        EmployeeRole(r.u8()),
		Username:    r.str(),
		Initialized: r.boolean(),
		Bump:        r.u8(),
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return e, nil
}
