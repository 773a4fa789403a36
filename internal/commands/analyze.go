package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bankfeed-dev/bankfeed/internal/engine"
	"github.com/bankfeed-dev/bankfeed/internal/profile"
)

func newAnalyzeCommand() *cobra.Command {
	var format string
	var saveAs string
	var profilesPath string

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Inspect a statement and suggest an import config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args[0], format, saveAs, profilesPath)
		},
	}

	cmd.Flags().StringVar(&format, "format", "auto", "input format: delimited, spreadsheet, or auto")
	cmd.Flags().StringVar(&saveAs, "save", "", "save the suggested config as a named profile")
	cmd.Flags().StringVar(&profilesPath, "profiles", profile.DefaultFileName, "profile file to save into")

	return cmd
}

func runAnalyze(cmd *cobra.Command, path, format, saveAs, profilesPath string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	hint, err := resolveFormat(format, data)
	if err != nil {
		return err
	}

	analysis, err := engine.Analyze(data, hint)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "header row: %d\n", analysis.HeaderRow)
	fmt.Fprintf(out, "header:     %s\n", strings.Join(analysis.HeaderCells, " | "))
	fmt.Fprintln(out, "preview:")
	for i, row := range analysis.PreviewRows {
		fmt.Fprintf(out, "  %2d  %s\n", i, strings.Join(row, " | "))
	}

	suggested, err := yaml.Marshal(analysis.Suggested)
	if err != nil {
		return fmt.Errorf("marshaling suggestion: %w", err)
	}
	fmt.Fprintln(out, "suggested config (review before importing):")
	fmt.Fprint(out, string(suggested))

	if saveAs == "" {
		return nil
	}

	profiles, err := profile.Load(profilesPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		profiles = &profile.File{}
	}
	profiles.Set(saveAs, analysis.Suggested)
	if err := profile.Save(profilesPath, profiles); err != nil {
		return err
	}
	fmt.Fprintf(out, "saved profile %q to %s\n", saveAs, profilesPath)
	return nil
}
