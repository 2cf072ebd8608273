// file: cmd/list/list.go

package list

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"dos33disk/pkg/diskimg"
)

// FileEntry represents a file in the catalog listing
type FileEntry struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	TypeTag string `json:"type_tag"`
	Locked  bool   `json:"locked"`
	Sectors int    `json:"sectors"`
	Bytes   int    `json:"bytes"`
}

// ListOptions configures the catalog listing
type ListOptions struct {
	JSON    bool   // Output in JSON format
	Long    bool   // Show detailed information
	Sort    string // Sort order: name, size, type
	Reverse bool   // Reverse sort order
	Pattern string // Filter by filename pattern
	Quiet   bool   // Suppress non-error output
}

// DefaultListOptions returns default options for List
func DefaultListOptions() *ListOptions {
	return &ListOptions{
		Sort:    "name",
		Pattern: "*",
	}
}

// List displays the catalog of a disk image
func List(diskPath string, opts *ListOptions) error {
	if opts == nil {
		opts = DefaultListOptions()
	}

	di, err := diskimg.LoadFromFile(diskPath)
	if err != nil {
		return fmt.Errorf("failed to open disk: %w", err)
	}

	catalog, err := di.Files()
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}

	var files []FileEntry
	for _, entry := range catalog {
		if !matchesPattern(entry.Name, opts.Pattern) {
			continue
		}
		files = append(files, FileEntry{
			Name:    entry.Name,
			Type:    entry.Type.String(),
			TypeTag: entry.Type.Ext(),
			Locked:  entry.Locked,
			Sectors: entry.SectorCount,
			Bytes:   entry.SectorCount * diskimg.BytesPerSector,
		})
	}

	sortFiles(files, opts)

	if opts.JSON {
		return outputJSON(files)
	}
	return outputCatalog(diskPath, files, di.VTOC().FreeSectorCount(), opts)
}

func matchesPattern(name, pattern string) bool {
	if pattern == "*" || pattern == "" {
		return true
	}
	matched, err := filepath.Match(strings.ToUpper(pattern), strings.ToUpper(name))
	return err == nil && matched
}

func sortFiles(files []FileEntry, opts *ListOptions) {
	less := func(i, j int) bool {
		var result bool
		switch strings.ToLower(opts.Sort) {
		case "size":
			result = files[i].Sectors < files[j].Sectors
		case "type":
			result = files[i].TypeTag < files[j].TypeTag
		default: // "name"
			result = files[i].Name < files[j].Name
		}
		if opts.Reverse {
			return !result
		}
		return result
	}
	sort.Slice(files, less)
}

func outputJSON(files []FileEntry) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(files)
}

// outputCatalog prints in the style of the DOS 3.3 CATALOG command:
// lock marker, type letter, sector count, name
func outputCatalog(diskPath string, files []FileEntry, freeSectors int, opts *ListOptions) error {
	if len(files) == 0 {
		if !opts.Quiet {
			fmt.Printf("Catalog of %s\n\nNo files\n", diskPath)
			fmt.Printf("\n%d sectors free\n", freeSectors)
		}
		return nil
	}

	fmt.Printf("Catalog of %s\n\n", diskPath)
	for _, file := range files {
		lock := " "
		if file.Locked {
			lock = "*"
		}
		if opts.Long {
			fmt.Printf("%s%-3s %03d %-30s %6d bytes\n", lock, file.TypeTag, file.Sectors, file.Name, file.Bytes)
		} else {
			fmt.Printf("%s%-3s %03d %s\n", lock, file.TypeTag, file.Sectors, file.Name)
		}
	}
	fmt.Printf("\n%d file(s), %d sectors free\n", len(files), freeSectors)

	return nil
}

// Cmd is the cobra command for list
var Cmd = &cobra.Command{
	Use:   "list <image.dsk>",
	Short: "List the catalog of a disk image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := DefaultListOptions()
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Long, _ = cmd.Flags().GetBool("long")
		opts.Sort, _ = cmd.Flags().GetString("sort")
		opts.Reverse, _ = cmd.Flags().GetBool("reverse")
		opts.Pattern, _ = cmd.Flags().GetString("pattern")
		opts.Quiet, _ = cmd.Flags().GetBool("quiet")

		return List(args[0], opts)
	},
}

func init() {
	Cmd.Flags().Bool("json", false, "output in JSON format")
	Cmd.Flags().BoolP("long", "l", false, "show detailed information")
	Cmd.Flags().String("sort", "name", "sort order: name, size, type")
	Cmd.Flags().BoolP("reverse", "r", false, "reverse sort order")
	Cmd.Flags().StringP("pattern", "p", "*", "filter by filename pattern")
	Cmd.Flags().BoolP("quiet", "q", false, "suppress non-error output")
}
