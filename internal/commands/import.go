package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bankfeed-dev/bankfeed/internal/canonical"
	"github.com/bankfeed-dev/bankfeed/internal/engine"
	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/profile"
)

func newImportCommand() *cobra.Command {
	var format string
	var profileName string
	var profilesPath string
	var outPath string
	var dir string

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a statement using a saved profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir != "" {
				return runImportDir(cmd, dir, profileName, profilesPath, format)
			}
			if len(args) != 1 {
				return fmt.Errorf("either a statement file or --dir is required")
			}
			return runImportFile(cmd, args[0], profileName, profilesPath, format, outPath)
		},
	}

	cmd.Flags().StringVar(&format, "format", "auto", "input format: delimited, spreadsheet, or auto")
	cmd.Flags().StringVar(&profileName, "profile", "", "profile name (required)")
	cmd.Flags().StringVar(&profilesPath, "profiles", profile.DefaultFileName, "profile file")
	cmd.Flags().StringVar(&outPath, "out", "", "write canonical CSV here instead of stdout")
	cmd.Flags().StringVar(&dir, "dir", "", "process every statement in <dir>/import")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func loadProfile(profilesPath, name string) (model.ImportConfig, error) {
	profiles, err := profile.Load(profilesPath)
	if err != nil {
		return model.ImportConfig{}, err
	}
	cfg, ok := profiles.Get(name)
	if !ok {
		return model.ImportConfig{}, fmt.Errorf("profile %q not found in %s", name, profilesPath)
	}
	return cfg, nil
}

func runImportFile(cmd *cobra.Command, path, profileName, profilesPath, format, outPath string) error {
	cfg, err := loadProfile(profilesPath, profileName)
	if err != nil {
		return err
	}

	txns, err := importOne(path, format, cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		defer f.Close()
		if err := canonical.Write(f, txns); err != nil {
			return err
		}
		fmt.Fprintf(out, "imported %d transactions to %s\n", len(txns), outPath)
		return nil
	}
	return canonical.Write(out, txns)
}

// runImportDir processes every statement in <root>/import with one profile,
// writing normalized CSVs to <root>/normalized and moving sources to
// import/processed. Files are processed independently; one bad file does
// not block the rest.
func runImportDir(cmd *cobra.Command, root, profileName, profilesPath, format string) error {
	cfg, err := loadProfile(profilesPath, profileName)
	if err != nil {
		return err
	}

	files, err := Scan(root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "nothing to import")
		return nil
	}

	outDir := filepath.Join(root, "normalized")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating normalized dir: %w", err)
	}

	var failed int
	for _, file := range files {
		txns, err := importOne(file.Path, format, cfg)
		if err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", file.Name, err)
			continue
		}

		outName := strings.TrimSuffix(file.Name, filepath.Ext(file.Name)) + ".csv"
		outFile, err := os.Create(filepath.Join(outDir, outName))
		if err != nil {
			return fmt.Errorf("creating %s: %w", outName, err)
		}
		writeErr := canonical.Write(outFile, txns)
		closeErr := outFile.Close()
		if writeErr != nil {
			return writeErr
		}
		if closeErr != nil {
			return closeErr
		}

		if err := MarkProcessed(root, file.Name); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d transactions\n", file.Name, len(txns))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}

func importOne(path, format string, cfg model.ImportConfig) ([]model.ParsedTransaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	hint, err := resolveFormat(format, data)
	if err != nil {
		return nil, err
	}
	return engine.Import(data, hint, cfg)
}
