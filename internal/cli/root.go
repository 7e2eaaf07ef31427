package cli

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/achrafato/MarkDown-App/config"
	pginfra "github.com/achrafato/MarkDown-App/internal/infrastructure/postgres"
	"github.com/achrafato/MarkDown-App/pkg/helpers"
)

// RootOptions holds global flags and what PersistentPreRunE builds from them.
type RootOptions struct {
	EnvFile string
	Verbose bool

	Cfg    *config.Config
	Logger *logrus.Logger
}

// NewRootCommand creates the root command for the blogctl CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "blogctl",
		Short: "blogctl - administer the markdown blog",
		Long:  "Administrative tasks for the markdown blog: schema migrations, demo data and account removal.",

		// main prints the error once
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.EnvFile != "" {
				config.LoadDotEnv(opts.EnvFile)
			} else {
				config.LoadDotEnv()
			}
			opts.Cfg = config.Load()
			opts.Logger = helpers.NewLogger("blogctl", opts.Cfg.Env)
			if !opts.Verbose {
				opts.Logger.SetLevel(logrus.WarnLevel)
			}
			opts.Logger.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", "", "dotenv file to load (default .env)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewUserCommand(opts))

	return cmd
}

func (o *RootOptions) openPool(ctx context.Context) (*pgxpool.Pool, error) {
	return pginfra.NewPool(ctx, o.Cfg.PostgresDSN(), pginfra.PoolOptions{MaxConns: 2})
}
