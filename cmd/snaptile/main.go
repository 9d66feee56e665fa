package main

import (
	"context"
	"fmt"
	"os"

	"github.com/1broseidon/snaptile/internal/daemon"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	configPath string
	noColor    bool

	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow)
	keyColor     = color.New(color.FgCyan)
)

var rootCmd = &cobra.Command{
	Use:   "snaptile",
	Short: "Drag-to-snap window placement for X11",
	Long: `snaptile watches window drags and snaps the dragged window to a
maximized, grid or edge-adjacent position, showing a translucent preview of
the destination while dragging.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	daemonLogLevel string
	daemonNoWatch  bool
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the snap daemon",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return daemon.Run(context.Background(), daemon.Options{
			ConfigPath: configPath,
			LogLevel:   daemonLogLevel,
			NoWatch:    daemonNoWatch,
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.config/snaptile/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	daemonCmd.Flags().StringVar(&daemonLogLevel, "log-level", "", "Override logging.level (debug, info, warn, error)")
	daemonCmd.Flags().BoolVar(&daemonNoWatch, "no-watch", false, "Do not reload when the config file changes")

	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(locateCmd)
	rootCmd.AddCommand(monitorsCmd)

	cobra.OnInitialize(func() {
		if noColor {
			color.NoColor = true
		}
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(err.Error())
		os.Exit(1)
	}
}

func printError(msg string) {
	errorColor.Fprint(os.Stderr, "Error: ")
	fmt.Fprintln(os.Stderr, msg)
}
