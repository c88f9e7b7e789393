package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecute(t *testing.T) {
	// Execute() calls os.Exit(1) on error, so only its presence is checked here.
	assert.NotNil(t, Execute)
}

func TestVersionVariables(t *testing.T) {
	assert.NotEmpty(t, Version, "Version should not be empty")
	assert.NotEmpty(t, Commit, "Commit should not be empty")
}

func TestCLIFlagsVariables(t *testing.T) {
	// cfgFile defaults to "commentetl.yaml" via init()
	assert.Equal(t, "commentetl.yaml", cfgFile, "cfgFile should default to commentetl.yaml")
	assert.Equal(t, "", logLevel)
	assert.Equal(t, "", logFormat)

	assert.Equal(t, 0, headRows)
	assert.Equal(t, 0, previewRows)

	assert.Equal(t, false, skipVerify)
}
