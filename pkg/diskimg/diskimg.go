// file: pkg/diskimg/diskimg.go

package diskimg

const (
	TracksPerDisk   = 35
	SectorsPerTrack = 16
	BytesPerSector  = 256
	DiskSizeInBytes = TracksPerDisk * SectorsPerTrack * BytesPerSector // 143,360 bytes

	// VTOC and first catalog sector locations for DOS 3.3
	VTOCTrack          = 17
	VTOCSector         = 0
	FirstCatalogTrack  = 17
	FirstCatalogSector = 15
)

// DiskImage represents an Apple II 5.25" DOS 3.3 disk image. The image
// owns its buffer exclusively; every on-disk structure (VTOC, catalog,
// track/sector lists) is a view into it. Mutating operations are not safe
// for concurrent use on the same image and must be serialized by the
// caller.
type DiskImage struct {
	data []byte
}

// NewDiskImage initializes a blank (unformatted) disk image
func NewDiskImage() *DiskImage {
	return &DiskImage{
		data: make([]byte, DiskSizeInBytes),
	}
}

// SectorOffset computes the byte offset of a sector within the image
func SectorOffset(track, sector int) (int, error) {
	if track < 0 || track >= TracksPerDisk {
		return 0, ErrInvalidTrack
	}
	if sector < 0 || sector >= SectorsPerTrack {
		return 0, ErrInvalidSector
	}
	return (track*SectorsPerTrack + sector) * BytesPerSector, nil
}

// GetSectorData retrieves a copy of the data in a specific track and sector
func (di *DiskImage) GetSectorData(track, sector int) ([]byte, error) {
	offset, err := SectorOffset(track, sector)
	if err != nil {
		return nil, err
	}
	data := make([]byte, BytesPerSector)
	copy(data, di.data[offset:offset+BytesPerSector])
	return data, nil
}

// SetSectorData writes data to a specific track and sector. Short writes
// leave the remainder of the sector untouched; writes longer than a
// sector fail with ErrSectorOverflow.
func (di *DiskImage) SetSectorData(track, sector int, data []byte) error {
	offset, err := SectorOffset(track, sector)
	if err != nil {
		return err
	}
	if len(data) > BytesPerSector {
		return ErrSectorOverflow
	}
	copy(di.data[offset:], data)
	return nil
}

// sectorView returns the live buffer region for a sector. Internal use
// only; callers outside the package go through Get/SetSectorData.
func (di *DiskImage) sectorView(track, sector int) ([]byte, error) {
	offset, err := SectorOffset(track, sector)
	if err != nil {
		return nil, err
	}
	return di.data[offset : offset+BytesPerSector], nil
}

// Bytes returns a copy of the raw image buffer
func (di *DiskImage) Bytes() []byte {
	out := make([]byte, len(di.data))
	copy(out, di.data)
	return out
}

// snapshot and restore support atomic multi-sector operations: AddFile
// takes a snapshot before its first mutation and restores it if any later
// step fails, so no partial allocation ever reaches the caller.
func (di *DiskImage) snapshot() []byte {
	return di.Bytes()
}

func (di *DiskImage) restore(snap []byte) {
	copy(di.data, snap)
}
