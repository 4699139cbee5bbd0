package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/qrsheet/pkg/source"
)

// urlCommand creates the url command.
func (c *CLI) urlCommand() *cobra.Command {
	var (
		flags   generationFlags
		dest    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:     "url <url>",
		Short:   "Encode a single URL as a PNG",
		Example: "  qrsheet url example.com/menu --size 200 --dest .",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := source.URLPayload(args[0])
			if err != nil {
				return err
			}
			return c.runSingle(cmd.Context(), cmd, payload, &flags, dest, noCache)
		},
	}

	flags.register(cmd, false)
	cmd.Flags().StringVarP(&dest, "dest", "d", "", "copy the PNG to this directory")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the symbol cache")
	return cmd
}

// contactCommand creates the contact command.
func (c *CLI) contactCommand() *cobra.Command {
	var (
		flags   generationFlags
		contact source.Contact
		dest    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Encode a contact card (vCard) as a PNG",
		Long: `Contact encodes a vCard 3.0 contact card. At least one of --name, --email or
--phone is required.`,
		Example: `  qrsheet contact --name "Ada Lovelace" --email ada@example.com --phone "+44 20 7946 0000"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := contact.Payload()
			if err != nil {
				return err
			}
			return c.runSingle(cmd.Context(), cmd, payload, &flags, dest, noCache)
		},
	}

	flags.register(cmd, false)
	cmd.Flags().StringVar(&contact.Name, "name", "", "full name")
	cmd.Flags().StringVar(&contact.Organization, "org", "", "organization")
	cmd.Flags().StringVar(&contact.Title, "title", "", "job title")
	cmd.Flags().StringVar(&contact.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&contact.Email, "email", "", "email address")
	cmd.Flags().StringVar(&contact.URL, "url", "", "website")
	cmd.Flags().StringVar(&contact.Address, "address", "", "postal address")
	cmd.Flags().StringVar(&contact.Note, "note", "", "free-form note")
	cmd.Flags().StringVarP(&dest, "dest", "d", "", "copy the PNG to this directory")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the symbol cache")
	return cmd
}
