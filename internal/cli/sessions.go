package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// sessionsCommand creates the session management command.
func (c *CLI) sessionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage generated session directories",
	}

	cmd.AddCommand(c.sessionsListCommand())
	cmd.AddCommand(c.sessionsPathCommand())
	cmd.AddCommand(c.sessionsRemoveCommand())

	return cmd
}

func (c *CLI) sessionsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sessions, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.newWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer ws.Close()

			sessions, err := ws.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				printInfo("No sessions")
				return nil
			}

			maxAge := c.Config.Sessions.MaxAge
			rows := make([][]string, 0, len(sessions))
			for _, s := range sessions {
				age := s.Age().Round(time.Second)
				status := StyleSuccess.Render("active")
				if maxAge > 0 && age > maxAge {
					status = StyleWarning.Render("expired")
				}
				rows = append(rows, []string{s.ID, s.CreatedAt.Local().Format(time.DateTime), age.String(), status})
			}
			printTable([]string{"ID", "Created", "Age", "Status"}, rows)
			printDetail("root: %s", ws.Root)
			return nil
		},
	}
}

func (c *CLI) sessionsPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path [id]",
		Short: "Print the directory of a session, or the session root",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.newWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer ws.Close()

			if len(args) == 0 {
				fmt.Fprintln(stdout, ws.Root)
				return nil
			}
			s, err := ws.Open(cmd.Context(), args[0], c.Config.Sessions.MaxAge)
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, s.Dir)
			return nil
		},
	}
}

func (c *CLI) sessionsRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"remove"},
		Short:   "Delete sessions and their files",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.newWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer ws.Close()

			for _, id := range args {
				if err := ws.Discard(cmd.Context(), id, nil); err != nil {
					return err
				}
				printSuccess("Removed %s", id)
			}
			return nil
		},
	}
}
