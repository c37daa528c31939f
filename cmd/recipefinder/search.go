package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/recipe-finder/backend/internal/search"
)

// Output formats accepted by -o.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func searchCmd(flags *globalFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "search <ingredients...>",
		Short: "Print the best-matching recipes for an ingredient query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return fmt.Errorf("query must not be blank")
			}

			_, _, eng, err := setup(flags)
			if err != nil {
				return err
			}

			results := eng.Search("cli", query)
			return writeResults(cmd.OutOrStdout(), output, eng.Header(), results)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format: table, json, yaml")

	return cmd
}

func categoriesCmd(flags *globalFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List recipe categories in dataset order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, eng, err := setup(flags)
			if err != nil {
				return err
			}
			return writeCategories(cmd.OutOrStdout(), output, eng.Categories())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format: table, json, yaml")

	return cmd
}

// resultRecord is the serialized form of one search hit.
type resultRecord struct {
	Rank   int               `json:"rank" yaml:"rank"`
	Score  float64           `json:"score" yaml:"score"`
	Fields map[string]string `json:"fields" yaml:"fields"`
}

func writeResults(w io.Writer, format string, header []string, results []search.Result) error {
	switch format {
	case outputTable:
		if len(results) == 0 {
			_, err := fmt.Fprintln(w, "No matching recipes found.")
			return err
		}
		fmt.Fprintf(w, "Found %d best-matching recipes:\n", len(results))

		table := tablewriter.NewWriter(w)
		table.SetHeader(append(append([]string{"#"}, header...), "Score"))
		table.SetAutoWrapText(false)
		for _, r := range results {
			row := []string{strconv.Itoa(r.Rank)}
			for col := range header {
				row = append(row, r.Recipe.Value(col))
			}
			row = append(row, strconv.FormatFloat(r.Score, 'f', 4, 64))
			table.Append(row)
		}
		table.Render()
		return nil
	case outputJSON, outputYAML:
		records := make([]resultRecord, len(results))
		for i, r := range results {
			fields := make(map[string]string, len(header))
			for col, name := range header {
				fields[name] = r.Recipe.Value(col)
			}
			records[i] = resultRecord{Rank: r.Rank, Score: r.Score, Fields: fields}
		}
		return encode(w, format, records)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeCategories(w io.Writer, format string, categories []string) error {
	switch format {
	case outputTable:
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"#", "Category"})
		for i, c := range categories {
			table.Append([]string{strconv.Itoa(i + 1), c})
		}
		table.Render()
		return nil
	case outputJSON, outputYAML:
		if categories == nil {
			categories = []string{}
		}
		return encode(w, format, categories)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func encode(w io.Writer, format string, v interface{}) error {
	if format == outputYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
