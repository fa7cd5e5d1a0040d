package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_defaults(t *testing.T) {
	clear := setEnv("KIERKI_TIMEOUT_SECONDS", "")
	defer clear()

	d, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 5, d.TimeoutSeconds)
	assert.Equal(t, 0, d.Port)
	assert.Equal(t, "", d.DealsFile)
}

func TestLoad_envOverrides(t *testing.T) {
	clear1 := setEnv("KIERKI_PORT", "9000")
	defer clear1()
	clear2 := setEnv("KIERKI_DEALS_FILE", "testdata/deals.txt")
	defer clear2()
	clear3 := setEnv("KIERKI_TIMEOUT_SECONDS", "8")
	defer clear3()

	d, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 9000, d.Port)
	assert.Equal(t, "testdata/deals.txt", d.DealsFile)
	assert.Equal(t, 8, d.TimeoutSeconds)
}

func setEnv(key, val string) func() {
	orig, wasSet := os.LookupEnv(key)
	if val == "" {
		_ = os.Unsetenv(key)
	} else {
		_ = os.Setenv(key, val)
	}

	return func() {
		if !wasSet {
			_ = os.Unsetenv(key)
		} else {
			_ = os.Setenv(key, orig)
		}
	}
}
