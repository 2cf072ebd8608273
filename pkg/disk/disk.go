// file: pkg/disk/disk.go

package disk

import (
	"fmt"

	"dos33disk/pkg/diskimg"
)

// FileSpec describes one file to place on a disk: the catalog name, the
// raw content, and the DOS 3.3 type. LoadAddr applies to binary files
// only.
type FileSpec struct {
	Name     string
	Data     []byte
	Type     diskimg.FileType
	LoadAddr uint16
}

// BuildOptions configures image construction
type BuildOptions struct {
	VolumeNumber byte   // Volume number written into the VTOC
	BootSector   []byte // Optional opaque boot blob for track 0 sector 0
}

// DefaultBuildOptions returns the standard DOS 3.3 defaults
func DefaultBuildOptions() *BuildOptions {
	return &BuildOptions{
		VolumeNumber: diskimg.DefaultVolumeNumber,
	}
}

// Build formats a fresh DOS 3.3 image and stores the given files on it,
// in order. Any failure aborts the build; partially built images are
// never returned.
func Build(files []FileSpec, opts *BuildOptions) (*diskimg.DiskImage, error) {
	if opts == nil {
		opts = DefaultBuildOptions()
	}

	di := diskimg.NewDiskImage()
	di.Format(opts.VolumeNumber)

	if len(opts.BootSector) > 0 {
		if err := di.WriteBootSector(opts.BootSector); err != nil {
			return nil, fmt.Errorf("failed to write boot sector: %w", err)
		}
	}

	for _, f := range files {
		var err error
		if f.Type == diskimg.FileTypeBinary {
			_, err = di.AddBinaryFile(f.Name, f.Data, f.LoadAddr)
		} else {
			_, err = di.AddFile(f.Name, f.Data, f.Type)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to add %s: %w", f.Name, err)
		}
	}

	return di, nil
}

// Details returns a human-readable summary of an image's filesystem state
func Details(di *diskimg.DiskImage) (string, error) {
	v := di.VTOC()
	files, err := di.Files()
	if err != nil {
		return "", err
	}

	out := fmt.Sprintf("Volume Number: %d\n", v.VolumeNumber())
	out += fmt.Sprintf("DOS Version: %d\n", v.Version())
	out += fmt.Sprintf("Tracks: %d, Sectors/Track: %d, Bytes/Sector: %d\n", v.Tracks(), v.Sectors(), v.SectorBytes())
	out += fmt.Sprintf("Free Sectors: %d of %d\n", v.FreeSectorCount(), diskimg.TracksPerDisk*diskimg.SectorsPerTrack)
	out += fmt.Sprintf("Files: %d\n", len(files))
	return out, nil
}
