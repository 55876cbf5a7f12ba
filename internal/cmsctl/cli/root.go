// Package cli implements the cmsctl commands.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/labelshop/internal/buildinfo"
	"github.com/dmitrijs2005/labelshop/internal/cmsctl/api"
	"github.com/dmitrijs2005/labelshop/internal/cmsctl/config"
	"github.com/dmitrijs2005/labelshop/internal/cmsctl/store"
	"github.com/spf13/cobra"
)

// App is the state shared by every command of one invocation.
type App struct {
	flagConfig string
	flagServer string
	flagState  string

	in     *bufio.Reader
	config *config.Config
	store  *store.TokenStore
	client *api.Client
}

// NewRootCmd builds the cmsctl command tree reading prompts from in.
func NewRootCmd(in io.Reader) *cobra.Command {
	app := &App{in: bufio.NewReader(in)}

	root := &cobra.Command{
		Use:           "cmsctl",
		Short:         "Manage label news and discography from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch cmd.Name() {
			case "version", "help", "completion":
				return nil
			}
			return app.init(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app.store != nil {
				return app.store.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&app.flagConfig, "config", "", "path to config file (default "+config.DefaultConfigPath()+")")
	root.PersistentFlags().StringVar(&app.flagServer, "server", "", "CMS base URL")
	root.PersistentFlags().StringVar(&app.flagState, "state", "", "path to the session database")

	root.AddCommand(
		app.loginCmd(),
		app.logoutCmd(),
		app.newsCmd(),
		app.discographyCmd(),
		app.uploadCmd(),
		versionCmd(),
	)
	return root
}

func (app *App) init(ctx context.Context) error {
	cfg, err := config.Load(app.flagConfig)
	if err != nil {
		return err
	}
	if app.flagServer != "" {
		cfg.ServerURL = app.flagServer
	}
	if app.flagState != "" {
		cfg.StatePath = app.flagState
	}

	s, err := store.Open(ctx, cfg.StatePath)
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}

	app.config = cfg
	app.store = s
	app.client = api.New(cfg.ServerURL, cfg.RequestTimeout(), s)
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}
}

// Execute runs cmsctl and exits non-zero on failure.
func Execute() {
	root := NewRootCmd(os.Stdin)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
