package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/harrisonrobin/taskdump/pkg/auth"
	"github.com/harrisonrobin/taskdump/pkg/config"
	"github.com/harrisonrobin/taskdump/pkg/google"
	"github.com/harrisonrobin/taskdump/pkg/logging"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "taskdump",
	Short: "Export a Google Tasks list to CSV",
	Long: `taskdump authenticates against Google Tasks, fetches the tasks of one
list and writes them to data/tasks_<timestamp>.csv.

The list is chosen with --list, the TASKLIST_ID environment variable (also read
from .env) or the default saved with "taskdump set-list".`,
	SilenceUsage: true,
}

var (
	credentialsFlag string
	tokenFlag       string
	verboseFlag     bool
)

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "taskdump version %s\n" .Version}}`)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&credentialsFlag, "credentials", "", "OAuth client secrets file (default \"credentials.json\")")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "cached OAuth token file (default \"token.json\")")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")

	exportCmd := newExportCmd()
	rootCmd.AddCommand(exportCmd)
	// Without a subcommand, export. The export flags keep their defaults.
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return exportCmd.RunE(cmd, args)
	}
	rootCmd.AddCommand(newGetCmd())
	rootCmd.AddCommand(newListsCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newSetListCmd())
	rootCmd.AddCommand(newHistoryCmd())
}

// app carries the resolved configuration of one command invocation.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newApp(cmd *cobra.Command) (*app, error) {
	logger := logging.New(cmd.ErrOrStderr(), verboseFlag)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("could not load configuration", logging.Err(err))
		return nil, err
	}
	if credentialsFlag != "" {
		cfg.CredentialsFile = credentialsFlag
	}
	if tokenFlag != "" {
		cfg.TokenFile = tokenFlag
	}
	return &app{cfg: cfg, logger: logger}, nil
}

func (a *app) oauthConfig() (*oauth2.Config, error) {
	oauthConfig, err := auth.LoadConfig(a.cfg.CredentialsFile, auth.Scopes...)
	if err != nil {
		a.logger.Error("error loading client secret file", logging.Err(err))
		return nil, err
	}
	return oauthConfig, nil
}

func (a *app) authenticator(oauthConfig *oauth2.Config, receiver auth.CodeReceiver) *auth.Authenticator {
	return auth.NewAuthenticator(oauthConfig, auth.NewFileTokenStore(a.cfg.TokenFile), receiver, a.logger)
}

func (a *app) tasksClient(cmd *cobra.Command) (*google.TasksClient, error) {
	oauthConfig, err := a.oauthConfig()
	if err != nil {
		return nil, err
	}
	authenticator := a.authenticator(oauthConfig, &auth.PromptReceiver{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()})

	httpClient, err := authenticator.Authenticate(cmd.Context())
	if err != nil {
		a.logger.Error("authentication failed", logging.Err(err))
		return nil, err
	}
	return google.NewClient(cmd.Context(), httpClient, a.logger)
}

// errNoTaskList is returned when no task list was selected.
var errNoTaskList = &auth.ConfigError{Err: errors.New("no task list selected: pass --list, set " + config.EnvTaskListID + " or run \"taskdump set-list\"")}

func (a *app) listID(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if a.cfg.TaskListID != "" {
		return a.cfg.TaskListID, nil
	}
	return "", errNoTaskList
}
