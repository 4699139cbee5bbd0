package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qrsheet/pkg/session"
)

// sweepCommand deletes expired sessions once, or repeatedly with --watch or
// --every.
func (c *CLI) sweepCommand() *cobra.Command {
	var maxAge, every time.Duration
	var watch bool

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Delete sessions older than the maximum age",
		Long: `Sweep deletes registered sessions older than --max-age, and any directory
under the session root that no registry knows about and was last modified
before the cutoff. With --watch it keeps running until interrupted, sweeping
at the configured sweep_interval; --every overrides the interval and implies
--watch.`,
		Example: `  qrsheet sweep --max-age 30m
  qrsheet sweep --watch
  qrsheet sweep --every 5m`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("max-age") {
				maxAge = c.Config.Sessions.MaxAge
			}
			if maxAge <= 0 {
				maxAge = session.DefaultMaxAge
			}

			ws, err := c.newWorkspace(ctx)
			if err != nil {
				return err
			}
			defer ws.Close()
			sweeper := session.NewSweeper(ws, loggerFromContext(ctx))

			if interval, ok := c.sweepInterval(every, watch || cmd.Flags().Changed("every")); ok {
				printInfo("Sweeping %s every %s (max age %s)", ws.Root, interval, maxAge)
				sweeper.Run(ctx, interval, maxAge)
				return nil
			}

			removed := sweeper.Sweep(ctx, maxAge)
			printSuccess("Removed %d expired sessions", removed)
			printDetail("root: %s", ws.Root)
			return nil
		},
	}

	cmd.Flags().DurationVar(&maxAge, "max-age", session.DefaultMaxAge, "delete sessions older than this")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep sweeping at the configured interval until interrupted")
	cmd.Flags().DurationVar(&every, "every", 0, "repeat the sweep at this interval until interrupted (implies --watch)")
	return cmd
}

// sweepInterval reports whether the sweep should repeat and how often. An
// unset or non-positive interval falls back to the configured one, then to
// session.DefaultSweepInterval.
func (c *CLI) sweepInterval(every time.Duration, watch bool) (time.Duration, bool) {
	if !watch {
		return 0, false
	}
	if every > 0 {
		return every, true
	}
	if c.Config != nil && c.Config.Sessions.SweepInterval > 0 {
		return c.Config.Sessions.SweepInterval, true
	}
	return session.DefaultSweepInterval, true
}
