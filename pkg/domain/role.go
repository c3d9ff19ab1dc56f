package domain

import (
	"errors"
	"fmt"
)

type Role string

const (
	RoleUser  Role = "User"
	RoleVIP   Role = "VIP"
	RoleAdmin Role = "Admin"
)

var ErrUnknownRole = errors.New("unknown role")

func (r Role) String() string {
	return string(r)
}

func (r Role) IsKnown() bool {
	switch r {
	case RoleUser, RoleVIP, RoleAdmin:
		return true
	default:
		return false
	}
}

func AsRole(s string) (Role, error) {
	r := Role(s)
	if r.IsKnown() {
		return r, nil
	}
	return r, fmt.Errorf(`%w: "%s"`, ErrUnknownRole, s)
}
