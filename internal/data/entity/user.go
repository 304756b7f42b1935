package entity

import (
	"github.com/google/uuid"
)

type UserRole string

const (
	RoleAdmin       UserRole = "admin"
	RoleFaculty     UserRole = "faculty"
	RoleStudent     UserRole = "student"
	RoleStaff       UserRole = "staff"
	RoleMaintenance UserRole = "maintenance"
)

// Privileged reports whether the role has site-wide booking oversight.
func (r UserRole) Privileged() bool {
	return r == RoleAdmin || r == RoleStaff
}

// Valid reports whether the role is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleFaculty, RoleStudent, RoleStaff, RoleMaintenance:
		return true
	}
	return false
}

type User struct {
	Base
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Name         string   `db:"name"`
	Role         UserRole `db:"role"`
}

// Actor identifies who is performing an operation. The zero value is an
// anonymous caller.
type Actor struct {
	ID   uuid.UUID
	Role UserRole
}

func (a Actor) Anonymous() bool {
	return a.ID == uuid.Nil
}

func (a Actor) Privileged() bool {
	return !a.Anonymous() && a.Role.Privileged()
}
