package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/archiveflow/internal/steps"
)

var stepsCmd = &cobra.Command{
	Use:   "steps [pattern]",
	Short: "List the catalog entries",
	Long: `List the pipeline steps, manual-testing notes and notices, with any
catalog overrides from the config applied.

The optional pattern is a glob matched against entry ids.

Examples:
  archiveflow steps
  archiveflow steps 'lock*'
  archiveflow steps '{archive,verify}' --format yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSteps,
}

var stepsExportCmd = &cobra.Command{
	Use:   "export [output-file]",
	Short: "Write the catalog as an override file",
	Long: `Write every entry as a catalog override file. Edit the titles and
descriptions, then point catalog.path at the file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStepsExport,
}

var stepsFormat string

func init() {
	stepsCmd.AddCommand(stepsExportCmd)
	rootCmd.AddCommand(stepsCmd)

	stepsCmd.Flags().StringVar(&stepsFormat, "format", "table", "Output format (table/yaml/json)")
}

// stepRow is the listed form of a descriptor.
type stepRow struct {
	Index       int    `yaml:"index,omitempty" json:"index,omitempty"`
	ID          string `yaml:"id" json:"id"`
	Kind        string `yaml:"kind" json:"kind"`
	Decision    bool   `yaml:"decision,omitempty" json:"decision,omitempty"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

func runSteps(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(nil)
	if err != nil {
		return err
	}
	defer func() { _ = env.logger.Close() }()

	pattern := ""
	if len(args) > 0 {
		pattern = args[0]
	}
	matched, err := env.catalog.Match(pattern)
	if err != nil {
		return err
	}

	rows := make([]stepRow, 0, len(matched))
	for _, d := range matched {
		rows = append(rows, stepRow{
			Index:       d.Index,
			ID:          d.ID,
			Kind:        string(d.Kind),
			Decision:    d.Decision,
			Title:       d.Title,
			Description: d.Description,
		})
	}

	out := cmd.OutOrStdout()
	switch stepsFormat {
	case "table":
		return writeStepTable(out, rows)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("encoding steps: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	default:
		return fmt.Errorf("unknown format %q (use table, yaml or json)", stepsFormat)
	}
}

const descriptionWidth = 60

func writeStepTable(w io.Writer, rows []stepRow) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No matching entries.")
		return err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-3s %-16s %-8s %s\n", "#", "ID", "KIND", "TITLE")
	for _, r := range rows {
		idx := ""
		if r.Index > 0 {
			idx = fmt.Sprintf("%d", r.Index)
		}
		title := r.Title
		if r.Decision {
			title += " (decision)"
		}
		fmt.Fprintf(&sb, "%-3s %-16s %-8s %s\n", idx, r.ID, r.Kind, title)
		fmt.Fprintf(&sb, "%-29s %s\n", "", ansi.Truncate(r.Description, descriptionWidth, "…"))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func runStepsExport(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(nil)
	if err != nil {
		return err
	}
	defer func() { _ = env.logger.Close() }()

	data, err := steps.Export(env.catalog)
	if err != nil {
		return fmt.Errorf("exporting catalog: %w", err)
	}

	if len(args) == 0 {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(args[0], data, 0o644); err != nil {
		return fmt.Errorf("writing to %s: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Catalog exported to: %s\n", args[0])
	return nil
}
