// file: cmd/info/info.go

package info

import (
	"fmt"

	"github.com/spf13/cobra"

	"dos33disk/pkg/disk"
	"dos33disk/pkg/diskimg"
)

// InfoOptions configures the info display
type InfoOptions struct {
	Map bool // Show the per-track sector allocation map
}

// DefaultInfoOptions returns default options for Info
func DefaultInfoOptions() *InfoOptions {
	return &InfoOptions{}
}

// Info prints a summary of a disk image's filesystem state
func Info(diskPath string, opts *InfoOptions) error {
	if opts == nil {
		opts = DefaultInfoOptions()
	}

	di, err := diskimg.LoadFromFile(diskPath)
	if err != nil {
		return fmt.Errorf("failed to open disk: %w", err)
	}

	details, err := disk.Details(di)
	if err != nil {
		return fmt.Errorf("failed to read disk state: %w", err)
	}

	fmt.Printf("Disk image: %s\n", diskPath)
	fmt.Print(details)

	if opts.Map {
		fmt.Println()
		printAllocationMap(di)
	}

	return nil
}

// printAllocationMap draws one row per track, sector 0 on the left,
// X = used
func printAllocationMap(di *diskimg.DiskImage) {
	fmt.Print("         ")
	for s := 0; s < diskimg.SectorsPerTrack; s++ {
		fmt.Printf("%X", s)
	}
	fmt.Println()

	v := di.VTOC()
	for t := 0; t < diskimg.TracksPerDisk; t++ {
		used, err := v.TrackAllocation(t)
		if err != nil {
			continue
		}
		row := make([]byte, diskimg.SectorsPerTrack)
		for s, u := range used {
			if u {
				row[s] = 'X'
			} else {
				row[s] = '.'
			}
		}
		fmt.Printf("TRACK %02d |%s|\n", t, row)
	}
}

// Cmd is the cobra command for info
var Cmd = &cobra.Command{
	Use:   "info <image.dsk>",
	Short: "Show a summary of a disk image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := DefaultInfoOptions()
		opts.Map, _ = cmd.Flags().GetBool("map")

		return Info(args[0], opts)
	},
}

func init() {
	Cmd.Flags().BoolP("map", "m", false, "show the per-track sector allocation map")
}
