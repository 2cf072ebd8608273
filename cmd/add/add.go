// file: cmd/add/add.go

package add

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dos33disk/internal/config"
	"dos33disk/internal/logger"
	"dos33disk/pkg/diskimg"
)

// AddOptions configures file import
type AddOptions struct {
	Name     string // Catalog name override (single file only)
	Type     string // File type: auto, txt, int, bas, bin, s, rel, a, b
	LoadAddr uint16 // Load address for binary files
	Quiet    bool   // Suppress non-error output
}

// DefaultAddOptions returns default options for Add
func DefaultAddOptions() *AddOptions {
	return &AddOptions{
		Type:     "auto",
		LoadAddr: 0x2000,
	}
}

// Add imports host files (or a whole directory) into a disk image
func Add(diskPath string, hostPaths []string, opts *AddOptions) error {
	if opts == nil {
		opts = DefaultAddOptions()
	}
	if opts.Name != "" && len(hostPaths) > 1 {
		return fmt.Errorf("--name applies to a single file, got %d", len(hostPaths))
	}

	di, err := diskimg.LoadFromFile(diskPath)
	if err != nil {
		return fmt.Errorf("failed to open disk: %w", err)
	}
	logger.Debug("opened disk image", "path", diskPath,
		"freeSectors", di.VTOC().FreeSectorCount())

	importOpts := diskimg.DefaultImportOptions()
	importOpts.LoadAddr = opts.LoadAddr
	if opts.Type != "auto" {
		importOpts.Auto = false
		importOpts.FileType = diskimg.FileTypeFromExt(opts.Type)
	}

	var added []string
	for _, hostPath := range hostPaths {
		info, err := os.Stat(hostPath)
		if err != nil {
			return err
		}

		if info.IsDir() {
			names, err := di.ImportDirectory(hostPath, importOpts)
			if err != nil {
				return err
			}
			added = append(added, names...)
			continue
		}

		perFile := *importOpts
		perFile.Name = opts.Name
		entry, err := di.ImportFile(hostPath, &perFile)
		if err != nil {
			logger.Error("import failed", err, "source", hostPath)
			return fmt.Errorf("failed to import %s: %w", hostPath, err)
		}
		logger.Debug("imported file", "name", entry.Name,
			"sectors", entry.SectorCount, "source", hostPath)
		added = append(added, entry.Name)
	}

	if err := di.SaveToFile(diskPath); err != nil {
		return fmt.Errorf("failed to save disk image: %w", err)
	}
	logger.Info("saved disk image", "path", diskPath, "added", len(added),
		"freeSectors", di.VTOC().FreeSectorCount())

	if !opts.Quiet {
		for _, name := range added {
			fmt.Printf("Added %s\n", name)
		}
	}

	return nil
}

// Cmd is the cobra command for add
var Cmd = &cobra.Command{
	Use:   "add <image.dsk> <file-or-dir>...",
	Short: "Add host files to a disk image",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := DefaultAddOptions()
		opts.LoadAddr = uint16(config.Instance.Import.LoadAddress)

		opts.Name, _ = cmd.Flags().GetString("name")
		opts.Type, _ = cmd.Flags().GetString("type")
		if cmd.Flags().Changed("load-addr") {
			addr, _ := cmd.Flags().GetUint16("load-addr")
			opts.LoadAddr = addr
		}
		opts.Quiet, _ = cmd.Flags().GetBool("quiet")

		return Add(args[0], args[1:], opts)
	},
}

func init() {
	Cmd.Flags().StringP("name", "n", "", "catalog name for a single imported file")
	Cmd.Flags().StringP("type", "t", "auto", "file type: auto, txt, int, bas, bin, s, rel, a, b")
	Cmd.Flags().Uint16("load-addr", 0x2000, "load address for binary files")
	Cmd.Flags().BoolP("quiet", "q", false, "suppress non-error output")
}
