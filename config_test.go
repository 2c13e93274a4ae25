package yatranslate

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("YATRANSLATE_TEST_KEY", "secret-key")

	cfg, err := LoadConfig(strings.NewReader(`
api_key: ${YATRANSLATE_TEST_KEY}
format: XML
base_url: http://localhost:8080/tr
user_agent: custom-agent
proxy: http://proxy.local:3128
timeout: 15s
trace: true
`))
	require.NoError(t, err)

	assert.Equal(t, "secret-key", cfg.APIKey)
	assert.Equal(t, "XML", cfg.Format)
	assert.Equal(t, "http://localhost:8080/tr", cfg.BaseURL)
	assert.Equal(t, "custom-agent", cfg.UserAgent)
	assert.Equal(t, "http://proxy.local:3128", cfg.Proxy)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.True(t, cfg.Trace)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(strings.NewReader("api_key: [unterminated"))
	assert.Error(t, err)

	_, err = LoadConfig(strings.NewReader("api_kee: typo"))
	assert.Error(t, err, "unknown keys should be rejected")
}

func TestLoadConfigEmpty(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, cfg.APIKey)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yatranslate.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_key: file-key\n"), 0o600))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.APIKey)

	_, err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	testCases := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"", FormatJSON, false},
		{"json", FormatJSON, false},
		{"Xml", FormatXML, false},
		{"yaml", FormatJSON, true},
	}

	for _, tc := range testCases {
		format, err := ParseFormat(tc.input)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.input)
			continue
		}
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.expected, format, "input %q", tc.input)
	}
}

func TestNewClientFromConfig(t *testing.T) {
	cfg := &Config{
		APIKey:  "config-key",
		Format:  "xml",
		BaseURL: "http://localhost:8080/tr/",
		Proxy:   "http://proxy.local:3128",
		Timeout: 5 * time.Second,
		Trace:   true,
	}

	client, err := NewClientFromConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, "config-key", client.apiKey)
	assert.Equal(t, FormatXML, client.Format())
	assert.Equal(t, "http://localhost:8080/tr", client.baseURL)
	assert.Equal(t, 5*time.Second, client.httpClient.Timeout)

	lrt, ok := client.httpClient.Transport.(*loggingRoundTripper)
	require.True(t, ok, "expected trace transport, got %T", client.httpClient.Transport)
	_, ok = lrt.Proxied.(*http.Transport)
	assert.True(t, ok, "expected proxied http.Transport, got %T", lrt.Proxied)

	u, err := client.makeURL(endpointLangs, "")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/tr/getLangs", u)
}

func TestNewClientFromConfigErrors(t *testing.T) {
	_, err := NewClientFromConfig(&Config{APIKey: "key", Format: "csv"})
	assert.Error(t, err)

	_, err = NewClientFromConfig(&Config{APIKey: "key", Proxy: "://bad"})
	assert.Error(t, err)

	_, err = NewClientFromConfig(&Config{})
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Code)
}
