package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedRoutePolicies(t *testing.T) {
	cas, err := NewInMemoryCasbinService()
	require.NoError(t, err)
	require.NoError(t, SeedRoutePolicies(cas.E))
	// seeding twice must be harmless
	require.NoError(t, SeedRoutePolicies(cas.E))

	tests := []struct {
		role    string
		path    string
		method  string
		allowed bool
	}{
		{RoleAnonymous, "/view", "GET", true},
		{RoleAnonymous, "/view/Doces", "POST", true},
		{RoleAnonymous, "/advert/abc", "GET", true},
		{RoleAnonymous, "/add", "GET", false},
		{RoleAnonymous, "/admin", "GET", false},
		{RoleAnonymous, "/uploads/*filepath", "GET", true},
		{RoleAnonymous, "/uploads/*filepath", "HEAD", true},
		{RoleAnonymous, "/uploads/*filepath", "POST", false},
		{RoleUser, "/add", "POST", true},
		{RoleUser, "/login", "POST", true},
		{RoleUser, "/approve/abc", "GET", false},
		{RoleUser, "/user/abc", "GET", false},
		{RoleAdmin, "/approve/abc", "POST", true},
		{RoleAdmin, "/reject/abc", "POST", true},
		{RoleAdmin, "/user/abc/ban", "POST", true},
		{RoleAdmin, "/user/abc/ban", "GET", false},
		{RoleAdmin, "/add", "POST", true},
		{RoleAdmin, "/view", "DELETE", false},
	}

	for _, tt := range tests {
		t.Run(tt.role+" "+tt.method+" "+tt.path, func(t *testing.T) {
			ok, err := cas.E.Enforce(tt.role, tt.path, tt.method)
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, ok)
		})
	}
}
