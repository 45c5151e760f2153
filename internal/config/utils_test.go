package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("MERIDIAN_TEST_STR", "value")
	assert.Equal(t, "value", getEnv("MERIDIAN_TEST_STR", "fallback"))
	assert.Equal(t, "fallback", getEnv("MERIDIAN_TEST_STR_MISSING", "fallback"))
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("MERIDIAN_TEST_INT", "42")
	assert.Equal(t, 42, getEnvAsInt("MERIDIAN_TEST_INT", 7))

	t.Setenv("MERIDIAN_TEST_INT", "nan")
	assert.Equal(t, 7, getEnvAsInt("MERIDIAN_TEST_INT", 7))
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("MERIDIAN_TEST_BOOL", "true")
	assert.True(t, getEnvAsBool("MERIDIAN_TEST_BOOL", false))

	t.Setenv("MERIDIAN_TEST_BOOL", "maybe")
	assert.False(t, getEnvAsBool("MERIDIAN_TEST_BOOL", false))
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("MERIDIAN_TEST_DUR", "90s")
	assert.Equal(t, 90*time.Second, getEnvAsDuration("MERIDIAN_TEST_DUR", time.Minute))

	t.Setenv("MERIDIAN_TEST_DUR", "soon")
	assert.Equal(t, time.Minute, getEnvAsDuration("MERIDIAN_TEST_DUR", time.Minute))
}

func TestGetEnvAsStringSlice(t *testing.T) {
	t.Setenv("MERIDIAN_TEST_SLICE", "a, b ,,c")
	assert.Equal(t, []string{"a", "b", "c"}, getEnvAsStringSlice("MERIDIAN_TEST_SLICE", nil))

	t.Setenv("MERIDIAN_TEST_SLICE", " , ")
	assert.Equal(t, []string{"x"}, getEnvAsStringSlice("MERIDIAN_TEST_SLICE", []string{"x"}))
}
