package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newStitchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stitches <file>",
		Short: "Dump the decoded stitch commands of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			offset, _ := cmd.Flags().GetInt("offset")

			pattern, err := c.app.Open(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			cmds := pattern.Commands()
			if offset < 0 {
				offset = 0
			}
			if offset > len(cmds) {
				offset = len(cmds)
			}
			end := len(cmds)
			if limit > 0 && offset+limit < end {
				end = offset + limit
			}

			out := cmd.OutOrStdout()
			for i := offset; i < end; i++ {
				sc := cmds[i]
				pos, _ := pattern.PositionAt(i)
				fmt.Fprintf(out, "%6d  %-12s  dx=%+4d dy=%+4d  at (%d, %d)\n",
					i, sc.Op, sc.DX, sc.DY, pos.X, pos.Y)
			}
			if end < len(cmds) {
				fmt.Fprintf(out, "... %d more\n", len(cmds)-end)
			}
			return nil
		},
	}
	cmd.Flags().IntP("limit", "n", 0, "Print at most this many commands (0 means all)")
	cmd.Flags().Int("offset", 0, "Skip this many commands before printing")
	return cmd
}
