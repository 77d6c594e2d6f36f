package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/beehive-drones/admin/internal/buildinfo"
	"github.com/beehive-drones/admin/internal/client/config"
	"github.com/beehive-drones/admin/internal/logging"
	"github.com/spf13/cobra"
)

// Streams are the standard streams of one command invocation. Environ is
// the environment used for configuration; nil means the process environment.
type Streams struct {
	In      io.Reader
	Out     io.Writer
	Err     io.Writer
	Environ map[string]string
}

// NewRootCommand builds the admin command tree. Without a subcommand it
// starts the interactive REPL; the subcommands run a single operation
// against the persisted session.
func NewRootCommand(s Streams) *cobra.Command {
	var app *App

	root := &cobra.Command{
		Use:           "beehive-admin",
		Short:         "Manage articles, careers, projects and products of the Beehive site",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			cfg, err := config.Load(cmd.Flags(), s.Environ)
			if err != nil {
				return err
			}
			log, err := logging.New(s.Err, cfg.LoggingOptions())
			if err != nil {
				return err
			}
			app, err = NewApp(cmd.Context(), cfg, log, s.In, s.Out)
			if err != nil {
				return err
			}
			app.Restore(cmd.Context())
			return nil
		},
		RunE: closing(&app, func(cmd *cobra.Command, _ []string) error {
			app.Run(cmd.Context())
			return nil
		}),
	}
	root.SetIn(s.In)
	root.SetOut(s.Out)
	root.SetErr(s.Err)
	config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			Run: func(cmd *cobra.Command, _ []string) {
				buildinfo.PrintBuildData(cmd.OutOrStdout())
			},
		},
		&cobra.Command{
			Use:   "login",
			Short: "Log in and persist the session",
			Args:  cobra.NoArgs,
			RunE: closing(&app, func(cmd *cobra.Command, _ []string) error {
				return app.Login(cmd.Context())
			}),
		},
		&cobra.Command{
			Use:   "logout",
			Short: "Log out and forget the session",
			Args:  cobra.NoArgs,
			RunE: closing(&app, func(cmd *cobra.Command, _ []string) error {
				return app.Logout(cmd.Context())
			}),
		},
		&cobra.Command{
			Use:   "whoami",
			Short: "Print the logged-in operator",
			Args:  cobra.NoArgs,
			RunE: closing(&app, func(cmd *cobra.Command, _ []string) error {
				return app.Whoami(cmd.Context())
			}),
		},
		listCommand(&app),
		&cobra.Command{
			Use:   "show <resource> <id>",
			Short: "Render one record",
			Args:  cobra.ExactArgs(2),
			RunE: closing(&app, func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[1])
				if err != nil {
					return err
				}
				return app.Show(cmd.Context(), args[0], id)
			}),
		},
		&cobra.Command{
			Use:   "create <resource>",
			Short: "Fill in and submit a new record",
			Args:  cobra.ExactArgs(1),
			RunE: closing(&app, func(cmd *cobra.Command, args []string) error {
				return app.Create(cmd.Context(), args[0])
			}),
		},
		&cobra.Command{
			Use:   "edit <resource> <id>",
			Short: "Edit and submit an existing record",
			Args:  cobra.ExactArgs(2),
			RunE: closing(&app, func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[1])
				if err != nil {
					return err
				}
				return app.Edit(cmd.Context(), args[0], id)
			}),
		},
		deleteCommand(&app),
	)
	return root
}

func listCommand(app **App) *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "list <resource>",
		Short: "Show the list view of a resource",
		Args:  cobra.ExactArgs(1),
		RunE: closing(app, func(cmd *cobra.Command, args []string) error {
			return (*app).List(cmd.Context(), args[0], page)
		}),
	}
	cmd.Flags().IntVarP(&page, "page", "p", 0, "page to load (paginated resources)")
	return cmd
}

func deleteCommand(app **App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <resource> <id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(2),
		RunE: closing(app, func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			return (*app).Delete(cmd.Context(), args[0], id, !yes)
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// closing runs fn and then releases the app opened by PersistentPreRunE,
// also when fn fails.
func closing(app **App, fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if *app != nil {
			err = errors.Join(err, (*app).Close(cmd.Context()))
		}
		return err
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
