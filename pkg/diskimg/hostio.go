// file: pkg/diskimg/hostio.go

package diskimg

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ImportOptions configures file import behavior
type ImportOptions struct {
	Name     string   // Catalog name; derived from the host name if empty
	FileType FileType // Target type; inferred from the extension if zero-valued Auto
	Auto     bool     // Infer the type from the host file extension
	LoadAddr uint16   // Load address for binary files
}

// DefaultImportOptions returns options that infer the type from the host
// extension and load binaries at $2000
func DefaultImportOptions() *ImportOptions {
	return &ImportOptions{
		Auto:     true,
		LoadAddr: 0x2000,
	}
}

// DiskNameFromHostPath derives a catalog name from a host path: the base
// name without extension, upper-cased. Truncation to 30 characters
// happens in the catalog encoder.
func DiskNameFromHostPath(hostPath string) string {
	base := filepath.Base(hostPath)
	return strings.ToUpper(strings.TrimSuffix(base, filepath.Ext(base)))
}

// ImportFile imports a host file into the disk image
func (di *DiskImage) ImportFile(hostPath string, opts *ImportOptions) (*CatalogEntry, error) {
	if opts == nil {
		opts = DefaultImportOptions()
	}

	data, err := os.ReadFile(hostPath)
	if err != nil {
		return nil, err
	}

	name := opts.Name
	if name == "" {
		name = DiskNameFromHostPath(hostPath)
	}

	fileType := opts.FileType
	if opts.Auto {
		fileType = FileTypeFromExt(filepath.Ext(hostPath))
	}

	if fileType == FileTypeBinary {
		return di.AddBinaryFile(name, data, opts.LoadAddr)
	}
	return di.AddFile(name, data, fileType)
}

// ImportDirectory imports every regular, non-empty file from a host
// directory in name order. Returns the catalog names added. Empty files
// are skipped since DOS 3.3 cannot represent a zero-sector file.
func (di *DiskImage) ImportDirectory(dir string, opts *ImportOptions) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var added []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return added, err
		}
		if info.Size() == 0 {
			continue
		}

		perFile := DefaultImportOptions()
		if opts != nil {
			*perFile = *opts
			perFile.Name = "" // names always derive from each host file
		}
		entry, err := di.ImportFile(filepath.Join(dir, e.Name()), perFile)
		if err != nil {
			return added, fmt.Errorf("failed to import %s: %w", e.Name(), err)
		}
		added = append(added, entry.Name)
	}
	return added, nil
}

// ExportFile writes a file's content to the host filesystem. Binary
// files are exported without their load-address header and trimmed to
// their recorded length; other types are exported as whole sectors.
func (di *DiskImage) ExportFile(name, hostPath string) error {
	entry, err := di.FindFile(name)
	if err != nil {
		return err
	}

	var data []byte
	if entry.Type == FileTypeBinary {
		_, data, err = di.ReadBinaryFile(name)
	} else {
		data, err = di.ReadFile(name)
	}
	if err != nil {
		return err
	}

	return os.WriteFile(hostPath, data, 0644)
}
