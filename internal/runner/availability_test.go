package runner

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAvailability(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on Unix tools")
	}

	result := CheckAvailability("sh", "this-tool-definitely-does-not-exist-12345")

	require.Len(t, result, 2)
	assert.True(t, result["sh"], "sh should be available")
	assert.False(t, result["this-tool-definitely-does-not-exist-12345"])
}

func TestCheckAvailability_NoTools(t *testing.T) {
	result := CheckAvailability()
	assert.NotNil(t, result)
	assert.Empty(t, result)
}
