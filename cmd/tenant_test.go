package cmd

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenantCheck(t *testing.T) {
	tenant := newMockTenant(t)

	output, err := execute(t, NewTenantCommand(), "check", tenant.URL+"/api/")
	require.NoError(t, err)
	assert.Contains(t, output, "Tenant "+tenant.URL+"/api is reachable")
	assert.Contains(t, output, "Sample tenant")
}

func TestTenantCheckUsesConfiguredURL(t *testing.T) {
	tenant := newMockTenant(t)

	origURL := os.Getenv("TENANT_URL")
	defer os.Setenv("TENANT_URL", origURL)
	os.Setenv("TENANT_URL", tenant.URL+"/api")

	output, err := execute(t, NewTenantCommand(), "check")
	require.NoError(t, err)
	assert.Contains(t, output, "0000-fcb")
}

func TestTenantCheckFailure(t *testing.T) {
	tenant := newMockTenant(t)

	_, err := execute(t, NewTenantCommand(), "check", tenant.URL+"/wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not reachable")
	assert.Contains(t, err.Error(), "404")
}
