package env

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listenConfig struct {
	Host    string        `env:"TEST_HOST"`
	Port    int           `env:"TEST_PORT"`
	Enabled bool          `env:"TEST_ENABLED"`
	Timeout time.Duration `env:"TEST_TIMEOUT"`
	NoTag   string
}

func TestLoad(t *testing.T) {
	t.Setenv("TEST_HOST", "example.com")
	t.Setenv("TEST_PORT", "9090")
	t.Setenv("TEST_ENABLED", "true")
	t.Setenv("TEST_TIMEOUT", "1m30s")

	var cfg listenConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, "example.com", cfg.Host)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
}

func TestLoad_UnsetKeepsExistingValues(t *testing.T) {
	t.Setenv("TEST_PORT", "7000")

	cfg := listenConfig{Host: "from-file", Port: 1, Timeout: time.Second}
	require.NoError(t, Load(&cfg))

	assert.Equal(t, "from-file", cfg.Host)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, time.Second, cfg.Timeout)
}

func TestLoad_EmptyStringRespected(t *testing.T) {
	t.Setenv("TEST_HOST", "")

	cfg := listenConfig{Host: "preset"}
	require.NoError(t, Load(&cfg))

	assert.Equal(t, "", cfg.Host)
}

func TestLoad_InvalidValue(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"int", "TEST_PORT", "eighty"},
		{"empty int", "TEST_PORT", ""},
		{"bool", "TEST_ENABLED", "maybe"},
		{"duration", "TEST_TIMEOUT", "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			var cfg listenConfig
			err := Load(&cfg)

			var invalid ErrInvalidValue
			require.True(t, errors.As(err, &invalid), "got %v", err)
			assert.Equal(t, tt.key, invalid.EnvVar)
			assert.Equal(t, tt.val, invalid.Value)
		})
	}
}

func TestLoad_IntOverflow(t *testing.T) {
	type small struct {
		N int8 `env:"TEST_SMALL"`
	}
	t.Setenv("TEST_SMALL", "300")

	var cfg small
	assert.Error(t, Load(&cfg))
}

func TestLoad_NotStructPointer(t *testing.T) {
	var cfg listenConfig

	err := Load(cfg)

	var notPtr ErrNotStructPointer
	assert.True(t, errors.As(err, &notPtr))
}

func TestLoad_UnsupportedType(t *testing.T) {
	type withSlice struct {
		Tags []string `env:"TEST_TAGS"`
	}
	t.Setenv("TEST_TAGS", "a,b")

	var cfg withSlice
	err := Load(&cfg)

	var unsupported ErrUnsupportedType
	assert.True(t, errors.As(err, &unsupported))
}

var errNeedsName = errors.New("name required")

type innerConfig struct {
	Name string `env:"TEST_INNER_NAME"`
}

func (c *innerConfig) Validate() error {
	if c.Name == "" {
		return errNeedsName
	}
	return nil
}

type outerConfig struct {
	Inner   innerConfig
	Started time.Time
}

func TestLoad_ValidatesNestedStructs(t *testing.T) {
	t.Run("nested validator fails", func(t *testing.T) {
		var cfg outerConfig
		assert.ErrorIs(t, Load(&cfg), errNeedsName)
	})

	t.Run("nested validator passes", func(t *testing.T) {
		t.Setenv("TEST_INNER_NAME", "ok")

		var cfg outerConfig
		require.NoError(t, Load(&cfg))
		assert.Equal(t, "ok", cfg.Inner.Name)
		assert.True(t, cfg.Started.IsZero(), "time.Time is not descended into")
	})
}

func TestLoad_ValidatesRoot(t *testing.T) {
	var cfg innerConfig
	assert.ErrorIs(t, Load(&cfg), errNeedsName)
}
