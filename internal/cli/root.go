package cli

import (
	"fmt"

	"github.com/monocle-dev/tracker/db"
	"github.com/monocle-dev/tracker/internal/config"
	"github.com/monocle-dev/tracker/internal/logger"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// App is the state shared by every command. Fields left nil are built from
// the configuration on first use.
type App struct {
	ConfigPath string
	Config     *config.Config
	DB         *gorm.DB
}

func (a *App) setup() error {
	if a.Config == nil {
		cfg, err := config.Load(a.ConfigPath)
		if err != nil {
			return err
		}
		a.Config = cfg
		logger.Init(cfg.Log)
	}

	if a.DB == nil {
		database, err := db.ConnectDatabase(a.Config.Database)
		if err != nil {
			return err
		}
		a.DB = database
	}

	return nil
}

// NewRootCmd creates the top-level "tracker" command and registers all
// subcommands against app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "tracker",
		Short:         "Project tracking API server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "path to a YAML config file")

	root.AddCommand(
		newServeCmd(app),
		newMigrateCmd(app),
		newMakeAdminCmd(app),
		newSeedCmd(app),
	)

	return root
}

func newMigrateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(); err != nil {
				return err
			}

			if err := db.MigrateDatabase(app.DB); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Database migrated")
			return nil
		},
	}
}

func newSeedCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the default users and categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(); err != nil {
				return err
			}

			data, err := db.LoadSeed(file)
			if err != nil {
				return err
			}

			result, err := db.Seed(app.DB, data)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d users and %d categories\n", result.Users, result.Categories)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "YAML seed file (defaults to the built-in data)")

	return cmd
}
