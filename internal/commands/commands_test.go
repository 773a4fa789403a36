package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankfeed-dev/bankfeed/internal/canonical"
	"github.com/bankfeed-dev/bankfeed/internal/engine"
	"github.com/bankfeed-dev/bankfeed/internal/model"
	"github.com/bankfeed-dev/bankfeed/internal/profile"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeCheckingProfile(t *testing.T, dir string) string {
	t.Helper()
	col := func(i int) *int { return &i }
	f := &profile.File{}
	f.Set("checking", model.ImportConfig{
		HeaderRow: 2,
		Columns: model.ColumnMapping{
			Date:        col(0),
			Description: col(1),
			Merchant:    col(2),
			Category:    col(3),
			Debit:       col(4),
			Credit:      col(5),
		},
		Format: model.AmountSeparate,
	})
	path := filepath.Join(dir, profile.DefaultFileName)
	require.NoError(t, profile.Save(path, f))
	return path
}

func TestScan_FindsStatements(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "bank.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "bank.xlsx"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "notes.md"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestScan_IgnoresProcessedDir(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	processedDir := filepath.Join(importDir, "processed")
	require.NoError(t, os.MkdirAll(processedDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "new.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(processedDir, "old.csv"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "new.csv", files[0].Name)
}

func TestScan_EmptyDir(t *testing.T) {
	files, err := Scan(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "bank.csv"), []byte("data"), 0o644))

	require.NoError(t, MarkProcessed(dir, "bank.csv"))

	_, err := os.Stat(filepath.Join(importDir, "bank.csv"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "import", "processed", "bank.csv"))
	assert.NoError(t, err)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, engine.FormatSpreadsheet, detectFormat([]byte{0x50, 0x4B, 0x03, 0x04, 0x00}))
	assert.Equal(t, engine.FormatDelimited, detectFormat([]byte("Date,Amount\n")))
	assert.Equal(t, engine.FormatDelimited, detectFormat(nil))
}

func TestResolveFormat_BadFlag(t *testing.T) {
	_, err := resolveFormat("parquet", nil)
	assert.Error(t, err)
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := runRoot(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized")

	info, err := os.Stat(filepath.Join(dir, "import", "processed"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	profiles, err := profile.Load(filepath.Join(dir, profile.DefaultFileName))
	require.NoError(t, err)
	_, ok := profiles.Get("example-checking")
	assert.True(t, ok)
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	_, err := runRoot(t, "init", dir)
	require.NoError(t, err)

	_, err = runRoot(t, "init", dir)
	assert.Error(t, err)
}

func TestAnalyzeCommand(t *testing.T) {
	out, err := runRoot(t, "analyze", "../../testdata/checking.csv")
	require.NoError(t, err)

	assert.Contains(t, out, "header row: 2")
	assert.Contains(t, out, "Posting Date")
	assert.Contains(t, out, "amount_format: separate")
}

func TestAnalyzeCommand_SaveProfile(t *testing.T) {
	dir := t.TempDir()
	profilesPath := filepath.Join(dir, profile.DefaultFileName)

	out, err := runRoot(t, "analyze", "../../testdata/checking.csv",
		"--save", "first-national", "--profiles", profilesPath)
	require.NoError(t, err)
	assert.Contains(t, out, "saved profile")

	profiles, err := profile.Load(profilesPath)
	require.NoError(t, err)
	cfg, ok := profiles.Get("first-national")
	require.True(t, ok)
	assert.Equal(t, 2, cfg.HeaderRow)
	assert.Equal(t, model.AmountSeparate, cfg.Format)
}

func TestImportCommand_ToFile(t *testing.T) {
	dir := t.TempDir()
	profilesPath := writeCheckingProfile(t, dir)
	outPath := filepath.Join(dir, "out.csv")

	_, err := runRoot(t, "import", "../../testdata/checking.csv",
		"--profile", "checking", "--profiles", profilesPath, "--out", outPath)
	require.NoError(t, err)

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()

	txns, err := canonical.Read(f)
	require.NoError(t, err)
	require.Len(t, txns, 3)
	assert.Equal(t, "-4", txns[0].Amount.String())
}

func TestImportCommand_UnknownProfile(t *testing.T) {
	dir := t.TempDir()
	profilesPath := writeCheckingProfile(t, dir)

	_, err := runRoot(t, "import", "../../testdata/checking.csv",
		"--profile", "nope", "--profiles", profilesPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestImportCommand_Dir(t *testing.T) {
	dir := t.TempDir()
	profilesPath := writeCheckingProfile(t, dir)

	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))
	statement, err := os.ReadFile("../../testdata/checking.csv")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "march.csv"), statement, 0o644))

	out, err := runRoot(t, "import", "--dir", dir,
		"--profile", "checking", "--profiles", profilesPath)
	require.NoError(t, err)
	assert.Contains(t, out, "march.csv: 3 transactions")

	// Source moved, normalized output written.
	_, err = os.Stat(filepath.Join(importDir, "march.csv"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "normalized", "march.csv"))
	assert.NoError(t, err)
}
