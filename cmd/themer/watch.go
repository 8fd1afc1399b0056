package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/themer/internal/cssvars"
	"github.com/alexisbeaulieu97/themer/internal/ports"
	themeerrors "github.com/alexisbeaulieu97/themer/pkg/errors"
)

type watchOptions struct {
	out   string
	scope scopeFlags
}

func newWatchCmd(app *AppContext) *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch [theme]",
		Short: "Keep a stylesheet in sync with the token source and system mode",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, app, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", "theme.css", "Stylesheet to keep up to date")
	cmd.Flags().Duration("poll-interval", 0, "System mode poll interval")
	opts.scope.bind(cmd)

	return cmd
}

func runWatch(cmd *cobra.Command, args []string, app *AppContext, opts *watchOptions) error {
	base, logger := app.CommandContext(cmd, "watch")
	ctx, stop := signal.NotifyContext(base, os.Interrupt, syscall.SIGTERM)
	defer stop()

	name, mode, err := app.Selection(cmd, args)
	if err != nil {
		return err
	}
	store, err := opts.scope.store(cmd, app)
	if err != nil {
		return newCommandError("open overrides", "scope flags", err, "Use --container page|header|footer|hero|section.")
	}

	sink := cssvars.NewFileSink(opts.out)
	orch, err := app.Orchestrator(ctx, sink, store, name, mode)
	if err != nil {
		return newCommandError("watch theme", name, err, "Use --mode light|dark|system.")
	}

	applied, err := orch.Refresh(ctx)
	if err != nil {
		return newCommandError("watch theme", name, err, "Retry the command.")
	}
	if !applied {
		return newCommandError("watch theme", name, themeerrors.ErrThemeNotFound,
			fmt.Sprintf("Run 'themer list --source %s' to see available themes.", app.Config.Source))
	}

	sub, err := app.Publisher.Subscribe(ports.EventThemeApplied, func(ctx context.Context, event ports.DomainEvent) error {
		if e, ok := event.(ports.Event); ok {
			fmt.Fprintf(cmd.OutOrStdout(), "applied %v (%v)\n", e.Fields["theme"], e.Fields["mode"])
		}
		return nil
	})
	if err != nil {
		return err
	}
	defer sub.Unsubscribe()

	if err := orch.Start(ctx); err != nil {
		return newCommandError("watch source", app.Config.Source, err, "Check that the source directory exists.")
	}

	logger.Info(ctx, "watching", "source", app.Config.Source, "stylesheet", sink.Path())
	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s; writing %s. Press Ctrl+C to stop.\n", app.Config.Source, sink.Path())

	<-ctx.Done()
	return orch.Close()
}
