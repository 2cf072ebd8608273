// file: cmd/create/create.go

package create

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"dos33disk/internal/config"
	"dos33disk/internal/logger"
	"dos33disk/pkg/diskimg"
)

// CreateOptions configures the disk creation
type CreateOptions struct {
	VolumeNumber byte   // Volume number for the VTOC
	BootSector   string // Optional path to a 256-byte boot blob
	Force        bool   // Overwrite existing file
	Quiet        bool   // Suppress non-error output
}

// DefaultCreateOptions returns default options for Create
func DefaultCreateOptions() *CreateOptions {
	return &CreateOptions{
		VolumeNumber: diskimg.DefaultVolumeNumber,
	}
}

// Create creates a new formatted DOS 3.3 disk image
func Create(outPath string, opts *CreateOptions) error {
	if opts == nil {
		opts = DefaultCreateOptions()
	}

	outPath = filepath.Clean(outPath)

	if !opts.Force {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("file already exists: %s (use --force to overwrite)", outPath)
		}
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	di := diskimg.NewDiskImage()
	di.Format(opts.VolumeNumber)
	logger.Debug("formatted image", "volume", opts.VolumeNumber,
		"freeSectors", di.VTOC().FreeSectorCount())

	if opts.BootSector != "" {
		blob, err := os.ReadFile(opts.BootSector)
		if err != nil {
			return fmt.Errorf("failed to read boot sector: %w", err)
		}
		if err := di.WriteBootSector(blob); err != nil {
			return fmt.Errorf("failed to write boot sector: %w", err)
		}
		logger.Debug("boot sector installed", "source", opts.BootSector)
	}

	if err := di.SaveToFile(outPath); err != nil {
		logger.Error("failed to save disk image", err, "path", outPath)
		os.Remove(outPath)
		return fmt.Errorf("failed to save disk image: %w", err)
	}

	// Verify the created image before reporting success
	if report := diskimg.NewDiskCheck(di).Run(); !report.OK() {
		logger.Warn("created image failed verification", "path", outPath,
			"failures", len(report.Failures()))
		os.Remove(outPath)
		return fmt.Errorf("disk image verification failed: %s", strings.Join(report.Failures(), "; "))
	}
	logger.Info("created disk image", "path", outPath, "volume", opts.VolumeNumber)

	if !opts.Quiet {
		fmt.Printf("Created DOS 3.3 disk image: %s (volume %d)\n", outPath, opts.VolumeNumber)
		if opts.BootSector != "" {
			fmt.Println("Boot sector installed")
		}
	}

	return nil
}

// Cmd is the cobra command for create
var Cmd = &cobra.Command{
	Use:   "create <image.dsk>",
	Short: "Create a new formatted DOS 3.3 disk image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := DefaultCreateOptions()
		opts.VolumeNumber = byte(config.Instance.Disk.VolumeNumber)
		opts.BootSector = config.Instance.Disk.BootSector

		if cmd.Flags().Changed("volume") {
			volume, _ := cmd.Flags().GetInt("volume")
			opts.VolumeNumber = byte(volume)
		}
		if cmd.Flags().Changed("boot") {
			opts.BootSector, _ = cmd.Flags().GetString("boot")
		}
		opts.Force, _ = cmd.Flags().GetBool("force")
		opts.Quiet, _ = cmd.Flags().GetBool("quiet")

		return Create(args[0], opts)
	},
}

func init() {
	Cmd.Flags().Int("volume", int(diskimg.DefaultVolumeNumber), "volume number for the VTOC")
	Cmd.Flags().String("boot", "", "path to a boot sector blob to install verbatim")
	Cmd.Flags().BoolP("force", "f", false, "overwrite an existing image")
	Cmd.Flags().BoolP("quiet", "q", false, "suppress non-error output")
}
