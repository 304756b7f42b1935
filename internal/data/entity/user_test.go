package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUserRolePrivileged(t *testing.T) {
	assert.True(t, RoleAdmin.Privileged())
	assert.True(t, RoleStaff.Privileged())
	assert.False(t, RoleFaculty.Privileged())
	assert.False(t, RoleStudent.Privileged())
	assert.False(t, RoleMaintenance.Privileged())
}

func TestActorZeroValueIsAnonymous(t *testing.T) {
	var actor Actor
	assert.True(t, actor.Anonymous())
	assert.False(t, actor.Privileged())

	// even a claimed role grants nothing without an identity
	actor.Role = RoleAdmin
	assert.False(t, actor.Privileged())

	actor.ID = uuid.New()
	assert.False(t, actor.Anonymous())
	assert.True(t, actor.Privileged())
}

func TestUserRoleValid(t *testing.T) {
	for _, role := range []UserRole{RoleAdmin, RoleFaculty, RoleStudent, RoleStaff, RoleMaintenance} {
		assert.True(t, role.Valid())
	}
	assert.False(t, UserRole("janitor").Valid())
	assert.False(t, UserRole("").Valid())
}
