package auth

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

const installedCredentials = `{
  "installed": {
    "client_id": "client-123.apps.googleusercontent.com",
    "client_secret": "shh",
    "auth_uri": "https://accounts.google.com/o/oauth2/auth",
    "token_uri": "https://oauth2.googleapis.com/token",
    "redirect_uris": ["http://localhost", "urn:ietf:wg:oauth:2.0:oob"]
  }
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "credentials.json", installedCredentials)

	config, err := LoadConfig(path, Scopes...)
	require.NoError(t, err)
	assert.Equal(t, "client-123.apps.googleusercontent.com", config.ClientID)
	assert.Equal(t, "shh", config.ClientSecret)
	assert.Equal(t, "http://localhost", config.RedirectURL)
	assert.Equal(t, []string{"https://www.googleapis.com/auth/tasks.readonly"}, config.Scopes)
	assert.Equal(t, "https://oauth2.googleapis.com/token", config.Endpoint.TokenURL)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.json") }},
		{"not json", func(t *testing.T) string { return writeFile(t, "credentials.json", "client_id=abc") }},
		{"no client section", func(t *testing.T) string { return writeFile(t, "credentials.json", `{"other":{}}`) }},
		{"empty client id", func(t *testing.T) string {
			return writeFile(t, "credentials.json", `{"installed":{"client_id":"","client_secret":"x","redirect_uris":["http://localhost"]}}`)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path(t)
			_, err := LoadConfig(path, Scopes...)
			require.Error(t, err)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr), "expected ConfigError, got %T", err)
			assert.Equal(t, path, cfgErr.Path)
		})
	}
}

func TestPrepareCallback(t *testing.T) {
	tests := []struct {
		name         string
		redirect     string
		wantAddr     string
		wantRedirect string
		wantErr      bool
	}{
		{"localhost without port", "http://localhost", ":6789", "http://localhost:6789", false},
		{"localhost with port", "http://localhost:8080/cb", ":8080", "http://localhost:8080/cb", false},
		{"loopback ip", "http://127.0.0.1/cb", ":6789", "http://127.0.0.1:6789/cb", false},
		{"oob", "urn:ietf:wg:oauth:2.0:oob", ":6789", "http://localhost:6789/oauth2callback", false},
		{"remote host", "https://example.com/callback", "", "https://example.com/callback", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &oauth2.Config{RedirectURL: tt.redirect}
			addr, err := PrepareCallback(config)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantAddr, addr)
			}
			assert.Equal(t, tt.wantRedirect, config.RedirectURL)
		})
	}
}
