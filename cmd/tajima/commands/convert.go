package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/tajima/internal/ui/style"
)

func (c *CLI) newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <src> <dst>",
		Short: "Round-trip a file through decode and encode",
		Long: "Decode src and write a freshly serialized copy to dst. " +
			"The output carries a normalized header and a canonical stitch stream.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Convert(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %s\n", style.Check, args[1])
			return nil
		},
	}
}
