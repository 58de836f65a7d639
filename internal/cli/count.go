package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// countCommand creates the count command: print the number of stored tweets.
func (c *CLI) countCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of stored tweets",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := c.loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			st, err := c.newStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			n, err := st.Count(ctx)
			if err != nil {
				return err
			}
			fmt.Println(n)
			return nil
		},
	}
}
