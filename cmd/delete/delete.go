// file: cmd/delete/delete.go

package delete

import (
	"fmt"

	"github.com/spf13/cobra"

	"dos33disk/internal/logger"
	"dos33disk/pkg/diskimg"
)

// DeleteOptions configures file deletion
type DeleteOptions struct {
	Quiet bool // Suppress non-error output
}

// DefaultDeleteOptions returns default options for Delete
func DefaultDeleteOptions() *DeleteOptions {
	return &DeleteOptions{}
}

// Delete removes files from a disk image and frees their sectors
func Delete(diskPath string, fileNames []string, opts *DeleteOptions) error {
	if opts == nil {
		opts = DefaultDeleteOptions()
	}

	di, err := diskimg.LoadFromFile(diskPath)
	if err != nil {
		return fmt.Errorf("failed to open disk: %w", err)
	}

	for _, name := range fileNames {
		if err := di.DeleteFile(name); err != nil {
			logger.Error("delete failed", err, "name", name)
			return fmt.Errorf("failed to delete %s: %w", name, err)
		}
		logger.Debug("deleted file", "name", name)
	}

	if err := di.SaveToFile(diskPath); err != nil {
		return fmt.Errorf("failed to save disk image: %w", err)
	}

	if !opts.Quiet {
		for _, name := range fileNames {
			fmt.Printf("Deleted %s\n", name)
		}
		fmt.Printf("%d sectors free\n", di.VTOC().FreeSectorCount())
	}

	return nil
}

// Cmd is the cobra command for delete
var Cmd = &cobra.Command{
	Use:   "delete <image.dsk> <file>...",
	Short: "Delete files from a disk image",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := DefaultDeleteOptions()
		opts.Quiet, _ = cmd.Flags().GetBool("quiet")

		return Delete(args[0], args[1:], opts)
	},
}

func init() {
	Cmd.Flags().BoolP("quiet", "q", false, "suppress non-error output")
}
