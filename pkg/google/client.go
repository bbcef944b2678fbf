package google

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/harrisonrobin/taskdump/pkg/logging"
	"google.golang.org/api/option"
	"google.golang.org/api/tasks/v1"
)

// NewClient creates a Google Tasks client that sends requests through httpClient,
// normally the authorized client returned by auth.Authenticator.
func NewClient(ctx context.Context, httpClient *http.Client, logger *slog.Logger, opts ...option.ClientOption) (*TasksClient, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	srv, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Tasks client: %w", err)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return NewTasksClient(srv, logger), nil
}
