package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	t.Run("up", func(t *testing.T) {
		setupTestServices(t)

		out, err := execute(t, "status")

		require.NoError(t, err)
		assert.Contains(t, out, "Server:  http://tags.test")
		assert.Contains(t, out, "Status:  UP")
	})

	t.Run("unreachable", func(t *testing.T) {
		env := setupTestServices(t)
		env.backend.healthErr = errBoom

		out, err := execute(t, "status")

		assert.ErrorIs(t, err, errBoom)
		assert.Contains(t, out, "Status:  DOWN")
	})

	t.Run("reports down", func(t *testing.T) {
		env := setupTestServices(t)
		env.backend.health = "DOWN"

		_, err := execute(t, "status")

		assert.EqualError(t, err, "server reports DOWN")
	})
}
