package cmd

import (
	"fmt"

	"github.com/harrisonrobin/taskdump/pkg/auth"
	"github.com/harrisonrobin/taskdump/pkg/logging"
	"github.com/spf13/cobra"
)

func newAuthCmd() *cobra.Command {
	var callback bool

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Discard the cached token and authorize again",
		Long: `Remove the cached OAuth token and run the authorization flow.

By default the authorization URL is printed and the code is read from stdin.
With --callback a local HTTP server receives the redirect instead; the
redirect URI in credentials.json must then point at localhost.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			oauthConfig, err := a.oauthConfig()
			if err != nil {
				return err
			}

			var receiver auth.CodeReceiver = &auth.PromptReceiver{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
			if callback {
				addr, err := auth.PrepareCallback(oauthConfig)
				if err != nil {
					return err
				}
				receiver = &auth.CallbackReceiver{Addr: addr, Out: cmd.OutOrStdout(), Logger: a.logger}
			}

			if _, err := a.authenticator(oauthConfig, receiver).Reauthorize(cmd.Context()); err != nil {
				a.logger.Error("authentication failed", logging.Err(err))
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Authentication successful! Token saved to %s\n", a.cfg.TokenFile)
			return nil
		},
	}

	cmd.Flags().BoolVar(&callback, "callback", false, "receive the code through a local callback server")
	return cmd
}
