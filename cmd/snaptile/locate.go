package main

import (
	"fmt"
	"io"

	"github.com/1broseidon/snaptile/internal/platform"
	"github.com/1broseidon/snaptile/internal/snapmode"
	"github.com/1broseidon/snaptile/internal/tiling"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	locateX       int
	locateY       int
	locateWindow  uint32
	locatePointer bool
)

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Show the snap target a drag would pick at a point",
	Long: `Evaluates the snap locator against the live window layout, the same way
the daemon does at the end of a drag. Use --window to exclude the window that
would be dragged.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadConfig()
		if err != nil {
			return err
		}
		cfg := res.Config

		backend, err := platform.NewLinuxBackendFromDisplay(zerolog.Nop())
		if err != nil {
			return err
		}
		defer backend.Disconnect()

		p := tiling.Point{X: locateX, Y: locateY}
		if locatePointer || (!cmd.Flags().Changed("x") && !cmd.Flags().Changed("y")) {
			if p, err = backend.Pointer(); err != nil {
				return err
			}
		}

		t, display, ok, err := snapmode.LocateAt(backend, p, platform.WindowID(locateWindow), cfg.SnapOptions())
		if err != nil {
			return err
		}
		if !ok {
			warnColor.Fprintf(cmd.OutOrStdout(), "no snap target at %d,%d\n", p.X, p.Y)
			return nil
		}

		opts := cfg.SnapOptions()
		renderTarget(cmd.OutOrStdout(), p, display, t, t.Rect(display.Usable, opts.Columns, opts.Rows))
		return nil
	},
}

var monitorsCmd = &cobra.Command{
	Use:   "monitors",
	Short: "List monitors and their work areas",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := platform.NewLinuxBackendFromDisplay(zerolog.Nop())
		if err != nil {
			return err
		}
		defer backend.Disconnect()

		displays, err := backend.Displays()
		if err != nil {
			return err
		}
		active := -1
		if d, err := backend.DisplayAtPointer(); err == nil {
			active = d.ID
		}
		renderDisplays(cmd.OutOrStdout(), displays, active)
		return nil
	},
}

func init() {
	locateCmd.Flags().IntVar(&locateX, "x", 0, "Pointer X in root coordinates")
	locateCmd.Flags().IntVar(&locateY, "y", 0, "Pointer Y in root coordinates")
	locateCmd.Flags().Uint32Var(&locateWindow, "window", 0, "Window to treat as the dragged one")
	locateCmd.Flags().BoolVar(&locatePointer, "pointer", false, "Use the current pointer position (default when --x/--y are absent)")
}

func renderTarget(w io.Writer, p tiling.Point, d platform.Display, t tiling.Target, rect tiling.Rect) {
	table := tablewriter.NewWriter(w)
	table.Header("Pointer", "Monitor", "Target", "Geometry")
	table.Append(fmt.Sprintf("%d,%d", p.X, p.Y), d.Name, t.String(), formatRect(rect))
	table.Render()
}

// renderDisplays lists displays and marks the one with ID active.
func renderDisplays(w io.Writer, displays []platform.Display, active int) {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Bounds", "Work area", "Pointer")
	for _, d := range displays {
		mark := ""
		if d.ID == active {
			mark = "*"
		}
		table.Append(fmt.Sprint(d.ID), d.Name, formatRect(d.Bounds), formatRect(d.Usable), mark)
	}
	table.Render()
}

func formatRect(r tiling.Rect) string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}
