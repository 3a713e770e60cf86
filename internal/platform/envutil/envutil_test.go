package envutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("KS_INT", "42")
	t.Setenv("KS_BAD_INT", "forty")
	t.Setenv("KS_FLOAT", "0.95")
	t.Setenv("KS_BOOL", "yes")
	t.Setenv("KS_DUR", "1500ms")
	t.Setenv("KS_DUR_SECONDS", "30")
	t.Setenv("KS_LIST", " http://a , ,http://b ")

	assert.Equal(t, 42, Int("KS_INT", 1))
	assert.Equal(t, 1, Int("KS_BAD_INT", 1))
	assert.Equal(t, 7, Int("KS_MISSING", 7))
	assert.InDelta(t, 0.95, Float("KS_FLOAT", 0), 1e-9)
	assert.True(t, Bool("KS_BOOL", false))
	assert.True(t, Bool("KS_MISSING", true))
	assert.Equal(t, 1500*time.Millisecond, Duration("KS_DUR", 0))
	assert.Equal(t, 30*time.Second, Duration("KS_DUR_SECONDS", 0))
	assert.Equal(t, []string{"http://a", "http://b"}, List("KS_LIST", nil))
	assert.Equal(t, "fallback", String("KS_MISSING", "fallback"))
}
