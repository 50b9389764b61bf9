package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/tajima/internal/core/domain"
	"go.trai.ch/tajima/internal/ui/style"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Cross-check header claims against the stitch stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mismatches, err := c.app.Check(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(mismatches) == 0 {
				fmt.Fprintf(out, "%s header matches stitch stream\n", style.Check)
				return nil
			}

			for _, m := range mismatches {
				fmt.Fprintf(out, "%s %s\n", style.Cross, m)
			}
			return domain.With(domain.ErrHeaderMismatch,
				"path", args[0],
				"mismatches", len(mismatches),
			)
		},
	}
}
