package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExamplesList(t *testing.T) {
	output, err := execute(t, NewExamplesCommand(), "list")
	require.NoError(t, err)

	assert.Contains(t, output, "NAME")
	assert.Contains(t, output, "CLASSIFICATION")
	assert.Contains(t, output, "All content types")
	assert.Contains(t, output, "All managed video assets")
	assert.Contains(t, output, "content-type")
}

func TestExamplesShow(t *testing.T) {
	output, err := execute(t, NewExamplesCommand(), "show", "--tenant-url", "https://tenant", "All managed assets")
	require.NoError(t, err)

	lines := strings.Split(output, "\n")
	assert.Equal(t, tenantBase+"asset&fq=location:%5C/dxdam/*", lines[0])
	assert.Contains(t, output, "classification: asset")
	assert.Contains(t, output, "field: location")
	assert.Contains(t, output, "text: Managed Assets")
}

func TestExamplesShowUnknown(t *testing.T) {
	_, err := execute(t, NewExamplesCommand(), "show", "Nothing")
	assert.ErrorContains(t, err, "example not found")
}
