// AngelaMos | 2026
// database_test.go

package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJitteredDuration(t *testing.T) {
	base := time.Hour
	for range 20 {
		got := jitteredDuration(base)
		assert.GreaterOrEqual(t, got, base)
		assert.Less(t, got, base+base/7)
	}
}

func TestJitteredDuration_ZeroMeansNoLimit(t *testing.T) {
	require.NotPanics(t, func() {
		assert.Equal(t, time.Duration(0), jitteredDuration(0))
	})
}

func TestJitteredDuration_TinyBase(t *testing.T) {
	// Below 7ns the jitter window rounds to zero; must not panic.
	require.NotPanics(t, func() {
		assert.Equal(t, 3*time.Nanosecond, jitteredDuration(3*time.Nanosecond))
	})
}
