package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

// TokenStore persists the OAuth token between runs.
type TokenStore interface {
	// Load returns the cached token, or ErrTokenNotFound if there is none.
	Load(ctx context.Context) (*oauth2.Token, error)
	// Save replaces the cached token.
	Save(ctx context.Context, token *oauth2.Token) error
	// Delete removes the cached token. Deleting a missing token is not an error.
	Delete(ctx context.Context) error
}

// FileTokenStore keeps the token as JSON in a single file.
type FileTokenStore struct {
	Path string
}

// NewFileTokenStore returns a FileTokenStore for path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{Path: path}
}

// Load reads an oauth2.Token from the JSON file.
func (s *FileTokenStore) Load(_ context.Context) (*oauth2.Token, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("failed to decode token from file %s: %w", s.Path, err)
	}
	return tok, nil
}

// Save writes token to the JSON file, readable by the owner only.
func (s *FileTokenStore) Save(_ context.Context, token *oauth2.Token) error {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("could not create token directory %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(s.Path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache OAuth token to %s: %w", s.Path, err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

// Delete removes the token file.
func (s *FileTokenStore) Delete(_ context.Context) error {
	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not delete token file %s: %w", s.Path, err)
	}
	return nil
}
