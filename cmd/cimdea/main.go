// Package main contains the cli implementation of the tool. It uses the
// cobra package for cli tool implementation.
package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/spf13/cobra"

	"cimdea/internal/conventions"
	"cimdea/internal/layout"
	"cimdea/internal/projectconfig"
	requestjson "cimdea/internal/request/json"
	"cimdea/internal/tableformat"
	"cimdea/internal/tabulate"
)

type tabulateFlags struct {
	requestFile string
	format      string
	verbose     bool
}

type layoutFlags struct {
	file string
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "cimdea",
		Short: "IPUMS hierarchical microdata tabulation engine",
	}

	rootCmd.AddCommand(tabulateCmd())
	rootCmd.AddCommand(layoutCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func tabulateCmd() *cobra.Command {
	flags := &tabulateFlags{}
	cmd := &cobra.Command{
		Use:   "tabulate <request.json>",
		Short: "Run a tabulation request and print the resulting tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			flags.requestFile = args[0]
			return runTabulate(flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "Output format: text or json")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Print the generated SQL for each dataset")

	return cmd
}

func runTabulate(flags *tabulateFlags) error {
	f, err := os.Open(flags.requestFile)
	if err != nil {
		return fmt.Errorf("failed to open request file: %w", err)
	}
	defer func() { _ = f.Close() }()

	mctx, req, err := requestjson.Decode(f)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	format := flags.format
	if format == "" {
		format = req.OutputFormat()
	}
	if format == "" {
		if cfg, cfgErr := loadProjectConfig(); cfgErr == nil && cfg.OutputFormat != "" {
			format = cfg.OutputFormat
		}
	}

	tabulatorOpts := []tabulate.Option{tabulate.WithFormat(conventions.Parquet)}
	if flags.verbose {
		tabulatorOpts = append(tabulatorOpts, tabulate.WithOutput(os.Stderr))
	}
	tabulator := tabulate.NewTabulator(tabulatorOpts...)

	result, err := tabulator.Tabulate(context.Background(), mctx, req)
	if err != nil {
		return fmt.Errorf("tabulation failed: %w", err)
	}

	tf, err := tableformat.FromString(format)
	if err != nil {
		return err
	}
	formatter, err := tableformat.NewFormatter(tf)
	if err != nil {
		return err
	}

	for _, table := range result.Tables {
		fmt.Printf("%s\n", table.Dataset)
		rendered, err := formatter.Format(table)
		if err != nil {
			return fmt.Errorf("failed to format table for %s: %w", table.Dataset, err)
		}
		fmt.Println(rendered)
	}
	return nil
}

func layoutCmd() *cobra.Command {
	flags := &layoutFlags{}
	cmd := &cobra.Command{
		Use:   "layout <layout.txt>",
		Short: "Parse a fixed-width layout file and print its variables",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			flags.file = args[0]
			return runLayout(flags)
		},
	}
	return cmd
}

func runLayout(flags *layoutFlags) error {
	vars, err := layout.ParseFile(flags.file)
	if err != nil {
		return fmt.Errorf("failed to parse layout: %w", err)
	}

	for _, v := range vars {
		fmt.Printf("%-12s start=%-4d width=%-3d type=%-2s record_type=%c\n",
			v.Name, v.Start, v.Width, v.TypeCode, v.RecordTypeCode)
	}
	return nil
}

func loadProjectConfig() (*projectconfig.Config, error) {
	return projectconfig.NewParser().ParseFile("cimdea.toml")
}

