package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// elementsCommand creates the elements command.
func (c *CLI) elementsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "elements",
		Short: "List the active element table",
		Long: `List the element symbols the parser recognizes and the number of bond
units each accepts. The table is the built-in organic subset unless
elements.path is set in the settings file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := c.Config.ElementTable()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(tbl.Map())
			}
			source := "built-in"
			if c.Config.Elements.Path != "" {
				source = c.Config.Elements.Path
			}
			printInfo("%d elements from %s", tbl.Len(), source)
			printDetail("fingerprint %s", tbl.Fingerprint()[:12])
			printTable(w, elementTable(tbl))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the table as JSON")

	return cmd
}
