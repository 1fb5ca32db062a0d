package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
	assert.Equal(t, setupSkip, versionCmd.Annotations[annotationSetup])
}

func TestVersionCmd_Executes(t *testing.T) {
	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "infinitag version test-version-1.0.0")
}

func TestVersionCmd_Short(t *testing.T) {
	SetVersion("1.2.3")
	defer SetVersion("dev")
	defer func() { versionShort = false }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version", "--short"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, "1.2.3\n", buf.String())
}

func TestVersionCmd_SkipsSetup(t *testing.T) {
	called := false
	SetSetup(func(Options) (*Services, func(), error) {
		called = true
		return &Services{}, nil, nil
	})
	defer SetSetup(nil)

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"version"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	assert.NoError(t, rootCmd.Execute())
	assert.False(t, called)
}
