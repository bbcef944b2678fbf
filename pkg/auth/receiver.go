package auth

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// CodeReceiver shows the authorization URL to the operator and returns the
// single-use authorization code once it arrives.
type CodeReceiver interface {
	ReceiveCode(ctx context.Context, authURL string) (string, error)
}

// PromptReceiver prints the URL and reads the code from In.
type PromptReceiver struct {
	In  io.Reader
	Out io.Writer
}

// ReceiveCode blocks until a line is read from In or ctx is done.
// When ctx ends first, the goroutine reading In stays blocked until In yields
// a line or is closed.
func (p *PromptReceiver) ReceiveCode(ctx context.Context, authURL string) (string, error) {
	fmt.Fprintf(p.Out, "Authorize this app by visiting this url:\n%s\n", authURL)
	fmt.Fprint(p.Out, "Enter the code from that page here: ")

	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := bufio.NewReader(p.In).ReadString('\n')
		if errors.Is(err, io.EOF) && line != "" {
			err = nil
		}
		ch <- result{line: strings.TrimSpace(line), err: err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return "", fmt.Errorf("could not read authorization code: %w", r.err)
		}
		return r.line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// CallbackReceiver runs a local HTTP server that captures the code from the OAuth redirect.
type CallbackReceiver struct {
	// Addr is used when Listener is nil.
	Addr     string
	Listener net.Listener
	Out      io.Writer
	Timeout  time.Duration
	Logger   *slog.Logger
}

// ReceiveCode serves until the redirect arrives, the timeout passes or ctx is done.
func (c *CallbackReceiver) ReceiveCode(ctx context.Context, authURL string) (string, error) {
	listener := c.Listener
	if listener == nil {
		var err error
		listener, err = net.Listen("tcp", c.Addr)
		if err != nil {
			return "", fmt.Errorf("failed to start listener on %s: %w", c.Addr, err)
		}
	}
	defer listener.Close()

	state := ""
	if u, err := url.Parse(authURL); err == nil {
		state = u.Query().Get("state")
	}

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	server := &http.Server{
		Handler:      callbackHandler(state, codeCh, errCh),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			select {
			case errCh <- fmt.Errorf("HTTP server error: %w", err):
			default:
			}
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	fmt.Fprintf(c.Out, "Please open the following URL in your browser to authorize taskdump:\n%s\n", authURL)
	if c.Logger != nil {
		c.Logger.Info("waiting for authorization code", slog.String("addr", listener.Addr().String()))
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case code := <-codeCh:
		return code, nil
	case err := <-errCh:
		return "", err
	case <-timer.C:
		return "", errors.New("authorization timed out, please try again")
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func callbackHandler(state string, codeCh chan<- string, errCh chan<- error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if state != "" && q.Get("state") != state {
			http.Error(w, "State mismatch", http.StatusBadRequest)
			return
		}
		if e := q.Get("error"); e != "" {
			http.Error(w, "Authorization denied", http.StatusBadRequest)
			select {
			case errCh <- fmt.Errorf("authorization denied: %s", e):
			default:
			}
			return
		}
		code := q.Get("code")
		if code == "" {
			http.Error(w, "Authorization code not found", http.StatusBadRequest)
			select {
			case errCh <- errors.New("authorization code not found in redirect URL"):
			default:
			}
			return
		}
		fmt.Fprint(w, "Authentication successful! You can close this window.")
		select {
		case codeCh <- code:
		default:
		}
	})
}
