package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bankfeed-dev/bankfeed/internal/engine"
)

// importDir is the subdirectory scanned for new statement files.
const importDir = "import"

// processedDir is the subdirectory statement files are moved to after import.
const processedDir = "import/processed"

// statementExts are the file extensions treated as statements.
var statementExts = map[string]bool{".csv": true, ".txt": true, ".xlsx": true}

// FileInfo describes a statement file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// Scan returns statement files in <root>/import/.
func Scan(root string) ([]FileInfo, error) {
	dir := filepath.Join(root, importDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !statementExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(root, fileName string) error {
	src := filepath.Join(root, importDir, fileName)
	dstDir := filepath.Join(root, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}

// detectFormat sniffs the engine format hint from magic bytes: xlsx is a
// ZIP container (PK\x03\x04), everything else is treated as delimited text.
func detectFormat(data []byte) engine.Format {
	if len(data) >= 4 && data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04 {
		return engine.FormatSpreadsheet
	}
	return engine.FormatDelimited
}

// resolveFormat honors an explicit --format flag, falling back to sniffing.
func resolveFormat(flag string, data []byte) (engine.Format, error) {
	switch flag {
	case "", "auto":
		return detectFormat(data), nil
	case string(engine.FormatDelimited):
		return engine.FormatDelimited, nil
	case string(engine.FormatSpreadsheet):
		return engine.FormatSpreadsheet, nil
	default:
		return "", fmt.Errorf("unknown format %q (want delimited, spreadsheet, or auto)", flag)
	}
}
