package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleOwner.IsValid())
	assert.True(t, RoleManager.IsValid())
	assert.True(t, RoleDriver.IsValid())
	assert.True(t, RoleAdmin.IsValid())

	// Guest is derived state, never stored.
	assert.False(t, RoleGuest.IsValid())
	assert.False(t, Role("").IsValid())
	assert.False(t, Role("superuser").IsValid())
}

func TestHasRole(t *testing.T) {
	assert.True(t, HasRole(RoleManager, RoleManager))
	assert.True(t, HasRole(RoleDriver, RoleManager, RoleDriver))
	assert.False(t, HasRole(RoleDriver, RoleManager))
	assert.False(t, HasRole(Role(""), RoleManager))
}

func TestHasPermission_Hierarchy(t *testing.T) {
	tests := []struct {
		name     string
		userRole Role
		required Role
		want     bool
	}{
		{"admin outranks owner", RoleAdmin, RoleOwner, true},
		{"owner outranks manager", RoleOwner, RoleManager, true},
		{"manager outranks driver", RoleManager, RoleDriver, true},
		{"role meets itself", RoleDriver, RoleDriver, true},
		{"driver below manager", RoleDriver, RoleManager, false},
		{"manager below owner", RoleManager, RoleOwner, false},
		{"owner below admin", RoleOwner, RoleAdmin, false},
		{"guest denied everywhere", RoleGuest, RoleDriver, false},
		{"empty role denied", Role(""), RoleDriver, false},
		{"unknown role denied", Role("superuser"), RoleDriver, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasPermission(tt.userRole, tt.required))
		})
	}
}

func TestDashboardPath(t *testing.T) {
	assert.Equal(t, "/owner/dashboard", DashboardPath(RoleOwner))
	assert.Equal(t, "/manager/dashboard", DashboardPath(RoleManager))
	assert.Equal(t, "/driver/dashboard", DashboardPath(RoleDriver))

	// Admins land on the owner dashboard.
	assert.Equal(t, "/owner/dashboard", DashboardPath(RoleAdmin))

	assert.Equal(t, "/auth/login", DashboardPath(RoleGuest))
	assert.Equal(t, "/auth/login", DashboardPath(Role("")))
}

func TestFormatRoleName(t *testing.T) {
	assert.Equal(t, "Car Owner", FormatRoleName(RoleOwner))
	assert.Equal(t, "Fleet Manager", FormatRoleName(RoleManager))
	assert.Equal(t, "Driver", FormatRoleName(RoleDriver))
	assert.Equal(t, "Administrator", FormatRoleName(RoleAdmin))
	assert.Equal(t, "guest", FormatRoleName(RoleGuest))
}
