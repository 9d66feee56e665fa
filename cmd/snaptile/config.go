package main

import (
	"fmt"
	"io"
	"os"

	"github.com/1broseidon/snaptile/internal/config"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and validate the configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the config file and report fallbacks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadConfig()
		if err != nil {
			return err
		}
		for _, w := range res.Warnings {
			warnColor.Fprint(cmd.OutOrStdout(), "warning: ")
			fmt.Fprintln(cmd.OutOrStdout(), w.String())
		}
		successColor.Fprintln(cmd.OutOrStdout(), "config: ok")
		return nil
	},
}

var (
	printDefaults bool
	printTable    bool
)

var configPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var res *config.LoadResult
		if printDefaults {
			res = &config.LoadResult{Config: config.DefaultConfig()}
		} else {
			var err error
			if res, err = loadConfig(); err != nil {
				return err
			}
		}

		if printTable {
			return renderConfigTable(cmd.OutOrStdout(), res)
		}
		data, err := yaml.Marshal(res.Config)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configExplainCmd = &cobra.Command{
	Use:   "explain <yaml.path>",
	Short: "Show a value and where it came from",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadConfig()
		if err != nil {
			return err
		}
		value, src, err := config.Explain(res, args[0])
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(value)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		keyColor.Fprint(w, "path: ")
		fmt.Fprintln(w, args[0])
		keyColor.Fprint(w, "source: ")
		fmt.Fprintln(w, formatSource(src))
		keyColor.Fprintln(w, "value:")
		fmt.Fprint(w, string(out))
		return nil
	},
}

var initForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.DefaultConfig().Save(path); err != nil {
			return err
		}
		successColor.Fprint(cmd.OutOrStdout(), "wrote ")
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	configPrintCmd.Flags().BoolVar(&printDefaults, "defaults", false, "Print built-in defaults (no files)")
	configPrintCmd.Flags().BoolVar(&printTable, "table", false, "Print every key with its source as a table")
	configInitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing file")

	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configPrintCmd)
	configCmd.AddCommand(configExplainCmd)
	configCmd.AddCommand(configInitCmd)
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.DefaultConfigPath()
}

func loadConfig() (*config.LoadResult, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return nil, err
	}
	return config.LoadFromPath(path)
}

// configRows returns one row per config key: key, value, source.
func configRows(res *config.LoadResult) ([][]string, error) {
	rows := make([][]string, 0, len(config.Paths))
	for _, path := range config.Paths {
		value, src, err := config.Explain(res, path)
		if err != nil {
			return nil, err
		}
		rows = append(rows, []string{path, fmt.Sprint(value), formatSource(src)})
	}
	return rows, nil
}

func renderConfigTable(w io.Writer, res *config.LoadResult) error {
	rows, err := configRows(res)
	if err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header("Key", "Value", "Source")
	for _, row := range rows {
		table.Append(row[0], row[1], row[2])
	}
	table.Render()
	return nil
}

func formatSource(src config.Source) string {
	switch src.Kind {
	case config.SourceFile:
		if src.File == "" {
			return "file"
		}
		if src.Line > 0 {
			return fmt.Sprintf("file:%s:%d:%d", src.File, src.Line, src.Column)
		}
		return "file:" + src.File
	case config.SourceDefault:
		return "default"
	default:
		return string(src.Kind)
	}
}
