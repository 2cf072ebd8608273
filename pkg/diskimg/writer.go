// file: pkg/diskimg/writer.go

package diskimg

import (
	"fmt"
	"io"
	"os"
)

// Track-sector list layout: forward pointer at 0x01/0x02, the sector
// offset of the list's first pair at 0x05/0x06, pairs from 0x0C up.
const (
	tslNextTrack  = 0x01
	tslNextSector = 0x02
	tslOffsetLo   = 0x05
	tslOffsetHi   = 0x06
	tslPairBase   = 0x0C

	// BIN files carry a 2-byte load address and 2-byte length before
	// their payload
	binHeaderSize = 4
)

// Format writes a fresh DOS 3.3 filesystem onto the image: VTOC, empty
// catalog, and a bitmap with everything free except the catalog track
func (di *DiskImage) Format(volumeNumber byte) {
	di.VTOC().Format(volumeNumber)
}

// AddFile stores a file on the disk: data sectors, the track-sector list
// chain describing them, the free-space bits, and a catalog entry. The
// operation is atomic; on any failure the image is restored byte-for-byte
// to its prior state. Zero-length input is rejected, and the final
// partial sector is zero-padded (DOS 3.3 records a sector count, not an
// exact byte length, so the padding is not recoverable on read).
func (di *DiskImage) AddFile(name string, data []byte, fileType FileType) (*CatalogEntry, error) {
	if name == "" {
		return nil, ErrInvalidFilename
	}
	if !fileType.IsValid() {
		return nil, ErrInvalidFileType
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	name = canonicalName(name)
	if _, err := di.FindFile(name); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrFileExists, name)
	} else if err != ErrFileNotFound {
		return nil, err
	}

	sectorCount := (len(data) + BytesPerSector - 1) / BytesPerSector
	tslCount := (sectorCount + MaxTSPairsPerSector - 1) / MaxTSPairsPerSector

	// Plan the whole allocation before mutating anything
	plan, err := di.findFreeSectors(tslCount + sectorCount)
	if err != nil {
		return nil, err
	}
	tslSectors := plan[:tslCount]
	dataSectors := plan[tslCount:]

	snap := di.snapshot()

	entry, err := di.writeFile(name, data, fileType, tslSectors, dataSectors)
	if err != nil {
		di.restore(snap)
		return nil, err
	}
	return entry, nil
}

func (di *DiskImage) writeFile(name string, data []byte, fileType FileType, tslSectors, dataSectors []TrackSector) (*CatalogEntry, error) {
	v := di.VTOC()

	// Data sectors, zero-padding the tail
	for i, ts := range dataSectors {
		chunk := make([]byte, BytesPerSector)
		copy(chunk, data[i*BytesPerSector:])
		if err := di.SetSectorData(ts.Track, ts.Sector, chunk); err != nil {
			return nil, err
		}
		if err := v.MarkSectorUsed(ts.Track, ts.Sector); err != nil {
			return nil, err
		}
	}

	// Track-sector list chain
	for i, ts := range tslSectors {
		buf := make([]byte, BytesPerSector)
		if i < len(tslSectors)-1 {
			buf[tslNextTrack] = byte(tslSectors[i+1].Track)
			buf[tslNextSector] = byte(tslSectors[i+1].Sector)
		}
		offset := i * MaxTSPairsPerSector
		buf[tslOffsetLo] = byte(offset % 256)
		buf[tslOffsetHi] = byte(offset / 256)

		pairs := len(dataSectors) - offset
		if pairs > MaxTSPairsPerSector {
			pairs = MaxTSPairsPerSector
		}
		for p := 0; p < pairs; p++ {
			buf[tslPairBase+p*2] = byte(dataSectors[offset+p].Track)
			buf[tslPairBase+p*2+1] = byte(dataSectors[offset+p].Sector)
		}

		if err := di.SetSectorData(ts.Track, ts.Sector, buf); err != nil {
			return nil, err
		}
		if err := v.MarkSectorUsed(ts.Track, ts.Sector); err != nil {
			return nil, err
		}
	}

	entry := &CatalogEntry{
		Name:        name,
		Type:        fileType,
		TSLStart:    tslSectors[0],
		SectorCount: len(dataSectors),
	}
	if err := di.AppendEntry(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// AddBinaryFile stores a BIN file with the 4-byte load address and length
// header DOS 3.3 binary files carry. The recorded length lets
// ReadBinaryFile trim the final sector's padding exactly.
func (di *DiskImage) AddBinaryFile(name string, data []byte, loadAddr uint16) (*CatalogEntry, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if len(data) > 0xFFFF {
		return nil, fmt.Errorf("%w: binary file length %d exceeds 16-bit header field", ErrFileTooLarge, len(data))
	}
	buf := make([]byte, binHeaderSize+len(data))
	buf[0] = byte(loadAddr % 256)
	buf[1] = byte(loadAddr / 256)
	buf[2] = byte(len(data) % 256)
	buf[3] = byte(len(data) / 256)
	copy(buf[binHeaderSize:], data)
	return di.AddFile(name, buf, FileTypeBinary)
}

// DeleteFile removes a file: frees its data and TSL sectors in the bitmap
// and marks the catalog slot deleted. The exact reverse of AddFile.
func (di *DiskImage) DeleteFile(name string) error {
	entry, err := di.FindFile(name)
	if err != nil {
		return err
	}

	tslSectors, dataSectors, err := di.fileSectors(entry)
	if err != nil {
		return err
	}

	v := di.VTOC()
	for _, ts := range dataSectors {
		if err := v.MarkSectorFree(ts.Track, ts.Sector); err != nil {
			return err
		}
	}
	for _, ts := range tslSectors {
		if err := v.MarkSectorFree(ts.Track, ts.Sector); err != nil {
			return err
		}
	}
	return di.markEntryDeleted(entry)
}

// SetLocked sets or clears a file's lock flag
func (di *DiskImage) SetLocked(name string, locked bool) error {
	entry, err := di.FindFile(name)
	if err != nil {
		return err
	}
	entry.Locked = locked
	return di.updateEntry(entry)
}

// RenameFile changes a file's catalog name
func (di *DiskImage) RenameFile(name, newName string) error {
	if newName == "" {
		return ErrInvalidFilename
	}
	newName = canonicalName(newName)
	if _, err := di.FindFile(newName); err == nil {
		return fmt.Errorf("%w: %s", ErrFileExists, newName)
	} else if err != ErrFileNotFound {
		return err
	}
	entry, err := di.FindFile(name)
	if err != nil {
		return err
	}
	entry.Name = newName
	return di.updateEntry(entry)
}

// WriteBootSector stores an opaque boot blob verbatim in track 0 sector 0
// and reserves the sector. The blob's contents are not interpreted.
func (di *DiskImage) WriteBootSector(blob []byte) error {
	if err := di.SetSectorData(0, 0, blob); err != nil {
		return err
	}
	return di.VTOC().MarkSectorUsed(0, 0)
}

// Save writes the raw image to an io.Writer
func (di *DiskImage) Save(w io.Writer) error {
	if _, err := w.Write(di.data); err != nil {
		return fmt.Errorf("failed to write disk image: %w", err)
	}
	return nil
}

// SaveToFile saves the disk image to a file
func (di *DiskImage) SaveToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return di.Save(file)
}
