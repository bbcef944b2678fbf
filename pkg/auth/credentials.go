package auth

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/tasks/v1"
)

const (
	// ClientSecretsFile is the default path of the downloaded Google API credentials.json file.
	// It contains the client_id, client_secret and redirect_uris.
	ClientSecretsFile = "credentials.json"

	// TokenFile is the default path where the obtained OAuth token is cached.
	TokenFile = "token.json"

	// LocalhostAuthPort is the port the callback server listens on when the
	// redirect URL does not name one.
	LocalhostAuthPort = "6789"

	oobRedirectURL = "urn:ietf:wg:oauth:2.0:oob"
)

// Scopes are the OAuth scopes requested by taskdump. Read-only access is enough.
var Scopes = []string{tasks.TasksReadonlyScope}

// LoadConfig reads a client secrets file and returns the oauth2.Config it describes.
// Any failure is reported as a *ConfigError.
func LoadConfig(path string, scopes ...string) (*oauth2.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: fmt.Errorf("unable to read client secret file: %w", err)}
	}

	config, err := google.ConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: fmt.Errorf("unable to parse client secret file to config: %w", err)}
	}
	if config.ClientID == "" {
		return nil, &ConfigError{Path: path, Err: errors.New("client_id is empty")}
	}
	return config, nil
}

// PrepareCallback points the redirect URL of config at a local callback server
// and returns the address that server has to listen on.
// An out-of-band redirect is replaced by http://localhost:LocalhostAuthPort/oauth2callback.
func PrepareCallback(config *oauth2.Config) (string, error) {
	if config.RedirectURL == oobRedirectURL || config.RedirectURL == "" {
		config.RedirectURL = fmt.Sprintf("http://localhost:%s/oauth2callback", LocalhostAuthPort)
		return ":" + LocalhostAuthPort, nil
	}

	parsedURL, err := url.Parse(config.RedirectURL)
	if err != nil {
		return "", fmt.Errorf("could not parse redirect URL %q: %w", config.RedirectURL, err)
	}
	host := parsedURL.Hostname()
	if host != "localhost" && host != "127.0.0.1" {
		return "", fmt.Errorf("redirect URL %q is not a localhost callback", config.RedirectURL)
	}

	port := parsedURL.Port()
	if port == "" {
		port = LocalhostAuthPort
		parsedURL.Host = fmt.Sprintf("%s:%s", host, port)
		config.RedirectURL = parsedURL.String()
	}
	return ":" + port, nil
}
