// file: pkg/diskimg/reader.go

package diskimg

import (
	"fmt"
	"io"
	"os"
)

// LoadImage wraps a raw image buffer. The buffer must be exactly one
// 5.25" disk; it is copied, so the image owns its bytes exclusively.
func LoadImage(data []byte) (*DiskImage, error) {
	if len(data) != DiskSizeInBytes {
		return nil, fmt.Errorf("%w: image is %d bytes, want %d", ErrCorruptImage, len(data), DiskSizeInBytes)
	}
	di := NewDiskImage()
	copy(di.data, data)
	return di, nil
}

// Load reads a disk image from an io.Reader
func Load(r io.Reader) (*DiskImage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read disk image: %w", err)
	}
	return LoadImage(data)
}

// LoadFromFile loads a .dsk image from a file
func LoadFromFile(filename string) (*DiskImage, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Load(file)
}

// fileSectors walks a file's track-sector list chain and returns the TSL
// sector addresses and the data sector addresses, in order. The walk is
// hop-bounded and keeps a visited set, so a corrupt or cyclic chain
// terminates with ErrCorruptImage instead of looping. A zero pair or an
// out-of-range pair ends the data list, matching how DOS reads files.
func (di *DiskImage) fileSectors(entry *CatalogEntry) (tsl, data []TrackSector, err error) {
	t, s := entry.TSLStart.Track, entry.TSLStart.Sector
	visited := make(map[TrackSector]bool)

	for hops := 0; hops < maxCatalogHops; hops++ {
		if t == 0 && s == 0 {
			return tsl, data, nil // end of chain
		}
		ts := TrackSector{Track: t, Sector: s}
		if visited[ts] {
			return nil, nil, fmt.Errorf("%w: track-sector list revisits track %d sector %d", ErrCorruptImage, t, s)
		}
		visited[ts] = true

		sec, err := di.sectorView(t, s)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: track-sector list points at track %d sector %d", ErrCorruptImage, t, s)
		}
		tsl = append(tsl, ts)

		for p := tslPairBase; p+1 < BytesPerSector; p += 2 {
			dt, ds := int(sec[p]), int(sec[p+1])
			if dt == 0 && ds == 0 {
				break
			}
			if dt >= TracksPerDisk || ds >= SectorsPerTrack {
				break
			}
			data = append(data, TrackSector{Track: dt, Sector: ds})
		}

		t, s = int(sec[tslNextTrack]), int(sec[tslNextSector])
	}
	return nil, nil, fmt.Errorf("%w: track-sector list chain exceeds %d sectors", ErrCorruptImage, maxCatalogHops)
}

// ReadFile reconstructs a file's content by concatenating its data
// sectors in track-sector list order. The result is always a whole number
// of sectors: the format records a sector count, not a byte length, so up
// to 255 trailing padding bytes of the final sector cannot be
// distinguished from content. Callers that need exact lengths must track
// them externally (or use binary files, which carry a length header).
func (di *DiskImage) ReadFile(name string) ([]byte, error) {
	entry, err := di.FindFile(name)
	if err != nil {
		return nil, err
	}

	_, dataSectors, err := di.fileSectors(entry)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(dataSectors)*BytesPerSector)
	for _, ts := range dataSectors {
		sec, err := di.sectorView(ts.Track, ts.Sector)
		if err != nil {
			return nil, err
		}
		out = append(out, sec...)
	}
	return out, nil
}

// ReadBinaryFile reads a BIN file, strips its 4-byte header and trims the
// payload to the length the header records
func (di *DiskImage) ReadBinaryFile(name string) (loadAddr uint16, data []byte, err error) {
	entry, err := di.FindFile(name)
	if err != nil {
		return 0, nil, err
	}
	if entry.Type != FileTypeBinary {
		return 0, nil, fmt.Errorf("%w: %s is %s", ErrNotBinaryFile, entry.Name, entry.Type)
	}

	raw, err := di.ReadFile(name)
	if err != nil {
		return 0, nil, err
	}
	if len(raw) < binHeaderSize {
		return 0, nil, fmt.Errorf("%w: binary file %s shorter than its header", ErrCorruptImage, entry.Name)
	}

	loadAddr = uint16(raw[0]) + 256*uint16(raw[1])
	length := int(raw[2]) + 256*int(raw[3])
	if binHeaderSize+length > len(raw) {
		return 0, nil, fmt.Errorf("%w: binary file %s declares %d bytes but holds %d", ErrCorruptImage, entry.Name, length, len(raw)-binHeaderSize)
	}
	return loadAddr, raw[binHeaderSize : binHeaderSize+length], nil
}
