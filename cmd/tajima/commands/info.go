package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/tajima/internal/core/domain"
	"go.trai.ch/tajima/internal/ui/panel"
)

type infoDTO struct {
	File         string   `json:"file"`
	Label        string   `json:"label"`
	Records      int      `json:"records"`
	Stitches     int      `json:"stitches"`
	Jumps        int      `json:"jumps"`
	ColorChanges int      `json:"color_changes"`
	WidthMM      float64  `json:"width_mm"`
	HeightMM     float64  `json:"height_mm"`
	ThreadMM     float64  `json:"thread_mm"`
	Bounds       [4]int   `json:"bounds"`
}

func (c *CLI) newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Show a summary of a stitch file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			asJSON, _ := cmd.Flags().GetBool("json")
			headerOnly, _ := cmd.Flags().GetBool("header-only")
			watch, _ := cmd.Flags().GetBool("watch")

			if headerOnly {
				header, err := c.app.Peek(path)
				if err != nil {
					return err
				}
				if asJSON {
					fields := map[string]string{}
					for _, f := range header.Fields() {
						fields[f.Code] = f.Value
					}
					return json.NewEncoder(cmd.OutOrStdout()).Encode(fields)
				}
				fmt.Fprintln(cmd.OutOrStdout(), panel.HeaderOnly(path, header))
				return nil
			}

			render := func(pattern *domain.Pattern) error {
				if asJSON {
					return json.NewEncoder(cmd.OutOrStdout()).Encode(newInfoDTO(path, pattern))
				}
				fmt.Fprintln(cmd.OutOrStdout(), panel.Info(path, pattern))
				return nil
			}

			pattern, err := c.app.Open(cmd.Context(), path)
			if err != nil {
				return err
			}
			if err := render(pattern); err != nil {
				return err
			}

			if !watch {
				return nil
			}

			err = c.app.Watch(cmd.Context(), path, func(pattern *domain.Pattern, err error) {
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "Error: "+err.Error())
					return
				}
				_ = render(pattern)
			})
			if err != nil {
				return err
			}

			<-cmd.Context().Done()
			return nil
		},
	}
	cmd.Flags().BoolP("json", "j", false, "Emit machine readable JSON instead of a panel")
	cmd.Flags().Bool("header-only", false, "Parse only the header block, skip stitch decoding")
	cmd.Flags().BoolP("watch", "w", false, "Re-render whenever the file changes on disk")
	return cmd
}

func newInfoDTO(path string, pattern *domain.Pattern) infoDTO {
	header := pattern.Header()
	stats := pattern.Stats()
	bounds := pattern.Bounds()
	return infoDTO{
		File:         path,
		Label:        header.Label(),
		Records:      stats.Records,
		Stitches:     stats.Stitches,
		Jumps:        stats.Jumps,
		ColorChanges: stats.ColorChanges,
		WidthMM:      float64(bounds.Width()) / 10,
		HeightMM:     float64(bounds.Height()) / 10,
		ThreadMM:     stats.ThreadLength / 10,
		Bounds:       [4]int{bounds.MinX, bounds.MinY, bounds.MaxX, bounds.MaxY},
	}
}
