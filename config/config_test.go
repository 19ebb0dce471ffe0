package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigado/hfrm"
)

func writeFile(t *testing.T, name, content string) string {
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "/tmp/SS1BTPM", c.Socket)
	assert.Equal(t, uint(115200), c.BaudRate)
	assert.Equal(t, 2*time.Second, c.ConnectTimeout)
	assert.Equal(t, 5*time.Second, c.Timeout)
	assert.Equal(t, "hci0", c.Adapter)
	assert.False(t, c.BlueZ)
	assert.NoError(t, c.Validate())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "hfrm.yaml",
			content: `
log_level: debug
tcp: 127.0.0.1:4000
timeout: 750ms
roles: [hf]
bluez: true
`,
		},
		{
			name:    "json",
			file:    "hfrm.json",
			content: `{"log_level": "debug", "tcp": "127.0.0.1:4000", "timeout": "750ms", "roles": ["hf"], "bluez": true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Load(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)

			assert.Equal(t, "debug", c.LogLevel)
			assert.Equal(t, "127.0.0.1:4000", c.TCP)
			assert.Equal(t, 750*time.Millisecond, c.Timeout)
			assert.Equal(t, []string{"hf"}, c.Roles)
			assert.True(t, c.BlueZ)

			// untouched fields keep their defaults
			assert.Equal(t, "/tmp/SS1BTPM", c.Socket)
			assert.Equal(t, "hci0", c.Adapter)
		})
	}
}

func TestLoadJSONNanoseconds(t *testing.T) {
	c, err := Load(writeFile(t, "hfrm.json", `{"timeout": 1000000}`))
	require.NoError(t, err)
	assert.Equal(t, time.Millisecond, c.Timeout)
}

func TestLoadErrors(t *testing.T) {
	for name, f := range map[string]struct{ file, content string }{
		"extension": {"hfrm.toml", "a = 1"},
		"syntax":    {"hfrm.json", "{"},
		"duration":  {"hfrm.json", `{"timeout": "soon"}`},
		"level":     {"hfrm.yaml", "log_level: loud"},
		"role":      {"hfrm.yaml", "roles: [headset]"},
		"transport": {"hfrm.yaml", "socket: ''"},
		"timeout":   {"hfrm.yaml", "timeout: -1s"},
	} {
		_, err := Load(writeFile(t, f.file, f.content))
		assert.Error(t, err, name)
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestOptions(t *testing.T) {
	c := Default()
	l := c.NewLogger()

	opts, err := c.Options(l)
	require.NoError(t, err)
	assert.Len(t, opts, 1)

	c.Roles = []string{"ag"}
	opts, err = c.Options(l)
	require.NoError(t, err)
	assert.Len(t, opts, 2)

	c.Roles = []string{"x"}
	_, err = c.Options(l)
	assert.Error(t, err)

	assert.Len(t, c.BusOptions(l), 4)
}

func TestNewLogger(t *testing.T) {
	for _, lvl := range []string{"debug", "warn", "bogus"} {
		c := Default()
		c.LogLevel = lvl
		l := c.NewLogger()
		require.NotNil(t, l)
		assert.Implements(t, (*hfrm.Logger)(nil), l)
	}
}

func TestDurationDecodingIsScoped(t *testing.T) {
	var c struct {
		Timeout time.Duration `json:"timeout"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"timeout": "2s"}`), &c))
	assert.Equal(t, 2*time.Second, c.Timeout)

	// other jsoniter users keep the stock behavior
	assert.Error(t, jsoniter.Unmarshal([]byte(`{"timeout": "2s"}`), &c))
	assert.Error(t, jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal([]byte(`{"timeout": "2s"}`), &c))
}
