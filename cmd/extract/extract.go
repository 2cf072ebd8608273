// file: cmd/extract/extract.go

package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"dos33disk/internal/logger"
	"dos33disk/pkg/diskimg"
)

// ExtractOptions configures file extraction
type ExtractOptions struct {
	Output string // Output path (file) or directory (with --all)
	All    bool   // Extract every file on the disk
	Quiet  bool   // Suppress non-error output
}

// DefaultExtractOptions returns default options for Extract
func DefaultExtractOptions() *ExtractOptions {
	return &ExtractOptions{}
}

// Extract copies one file, or all files, from a disk image to the host
func Extract(diskPath, fileName string, opts *ExtractOptions) error {
	if opts == nil {
		opts = DefaultExtractOptions()
	}

	di, err := diskimg.LoadFromFile(diskPath)
	if err != nil {
		return fmt.Errorf("failed to open disk: %w", err)
	}

	if opts.All {
		return extractAll(di, opts)
	}

	outPath := opts.Output
	if outPath == "" {
		outPath = hostName(fileName, di)
	}
	if err := di.ExportFile(fileName, outPath); err != nil {
		logger.Error("extract failed", err, "name", fileName)
		return fmt.Errorf("failed to extract %s: %w", fileName, err)
	}
	logger.Debug("extracted file", "name", fileName, "output", outPath)

	if !opts.Quiet {
		fmt.Printf("Extracted %s to %s\n", fileName, outPath)
	}
	return nil
}

func extractAll(di *diskimg.DiskImage, opts *ExtractOptions) error {
	files, err := di.Files()
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}

	outDir := opts.Output
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	for _, entry := range files {
		outPath := filepath.Join(outDir, hostName(entry.Name, di))
		if err := di.ExportFile(entry.Name, outPath); err != nil {
			logger.Error("extract failed", err, "name", entry.Name)
			return fmt.Errorf("failed to extract %s: %w", entry.Name, err)
		}
		logger.Debug("extracted file", "name", entry.Name, "output", outPath)
		if !opts.Quiet {
			fmt.Printf("Extracted %s to %s\n", entry.Name, outPath)
		}
	}
	return nil
}

// hostName derives a host filename with the conventional extension for
// the file's type
func hostName(name string, di *diskimg.DiskImage) string {
	ext := "bin"
	if entry, err := di.FindFile(name); err == nil {
		ext = strings.ToLower(entry.Type.Ext())
	}
	return strings.ToLower(name) + "." + ext
}

// Cmd is the cobra command for extract
var Cmd = &cobra.Command{
	Use:   "extract <image.dsk> [file]",
	Short: "Extract files from a disk image to the host",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := DefaultExtractOptions()
		opts.Output, _ = cmd.Flags().GetString("output")
		opts.All, _ = cmd.Flags().GetBool("all")
		opts.Quiet, _ = cmd.Flags().GetBool("quiet")

		fileName := ""
		if len(args) > 1 {
			fileName = args[1]
		}
		if fileName == "" && !opts.All {
			return fmt.Errorf("name a file to extract or pass --all")
		}

		return Extract(args[0], fileName, opts)
	},
}

func init() {
	Cmd.Flags().StringP("output", "o", "", "output file, or directory with --all")
	Cmd.Flags().BoolP("all", "a", false, "extract every file on the disk")
	Cmd.Flags().BoolP("quiet", "q", false, "suppress non-error output")
}
