package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/harrisonrobin/taskdump/pkg/logging"
	"golang.org/x/oauth2"
)

const stateToken = "state-token"

// Authenticator produces an authorized *http.Client from a client config and a token cache.
type Authenticator struct {
	config   *oauth2.Config
	store    TokenStore
	receiver CodeReceiver
	logger   *slog.Logger
}

// NewAuthenticator creates an Authenticator. A nil logger discards log output.
func NewAuthenticator(config *oauth2.Config, store TokenStore, receiver CodeReceiver, logger *slog.Logger) *Authenticator {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Authenticator{
		config:   config,
		store:    store,
		receiver: receiver,
		logger:   logging.WithOperation(logger, "authenticate"),
	}
}

// Authenticate returns a client bound to the cached token. When no token is
// cached it runs the interactive authorization flow first and caches the result.
// The cached token is not validated against the network.
func (a *Authenticator) Authenticate(ctx context.Context) (*http.Client, error) {
	tok, err := a.store.Load(ctx)
	switch {
	case err == nil:
		a.logger.Debug("using cached token", slog.String("access_token", logging.SanitizeToken(tok.AccessToken)))
	case errors.Is(err, ErrTokenNotFound):
		a.logger.Info("no cached token found, initiating authorization flow")
	default:
		a.logger.Warn("could not load cached token, initiating authorization flow", logging.Err(err))
	}

	if tok == nil {
		tok, err = a.authorize(ctx)
		if err != nil {
			return nil, err
		}
		// The token is valid for this run even if it cannot be cached.
		if err := a.store.Save(ctx, tok); err != nil {
			a.logger.Warn("could not cache token", logging.Err(err))
		} else {
			a.logger.Info("token stored")
		}
	}

	return a.config.Client(ctx, tok), nil
}

// Reauthorize discards the cached token, runs the authorization flow and
// caches the new token. A token that cannot be cached is an error.
func (a *Authenticator) Reauthorize(ctx context.Context) (*oauth2.Token, error) {
	if err := a.store.Delete(ctx); err != nil {
		return nil, err
	}
	tok, err := a.authorize(ctx)
	if err != nil {
		return nil, err
	}
	if err := a.store.Save(ctx, tok); err != nil {
		a.logger.Error("could not cache token", logging.Err(err))
		return nil, fmt.Errorf("failed to save token: %w", err)
	}
	a.logger.Info("token stored")
	return tok, nil
}

// authorize obtains a new token from the operator. It does not cache it.
func (a *Authenticator) authorize(ctx context.Context) (*oauth2.Token, error) {
	// AccessTypeOffline is needed for Google to return a refresh token.
	authURL := a.config.AuthCodeURL(stateToken, oauth2.AccessTypeOffline)

	code, err := a.receiver.ReceiveCode(ctx, authURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get authorization code: %w", err)
	}
	if code == "" {
		return nil, &AuthExchangeError{Err: errors.New("empty authorization code")}
	}

	tok, err := a.config.Exchange(ctx, code)
	if err != nil {
		a.logger.Error("error retrieving access token", logging.Err(err))
		return nil, &AuthExchangeError{Err: err}
	}

	return tok, nil
}
