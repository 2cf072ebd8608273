// file: pkg/diskimg/vtoc.go

package diskimg

// VTOC field offsets within track 17 sector 0
const (
	vtocCatalogTrack  = 0x01
	vtocCatalogSector = 0x02
	vtocDOSVersion    = 0x03
	vtocVolumeNumber  = 0x06
	vtocMaxTSPairs    = 0x27
	vtocTrackDir      = 0x30
	vtocTrackCount    = 0x34
	vtocSectorCount   = 0x35
	vtocSectorBytesLo = 0x36
	vtocSectorBytesHi = 0x37
	vtocBitmap        = 0x38 // 4 bytes per track, 1 bit per sector, 1 = free

	// DOSVersion is the version tag DOS 3.3 writes into the VTOC
	DOSVersion = 3
	// DefaultVolumeNumber matches the value DOS 3.3 INIT uses
	DefaultVolumeNumber = 254
	// MaxTSPairsPerSector is how many track/sector pairs fit in one
	// track-sector list sector (offsets 0x0C through 0xFF)
	MaxTSPairsPerSector = 122
)

// VTOC is a view over the volume table of contents sector. It carries no
// state of its own; every accessor reads or writes the image buffer
// directly, so the bitmap can never drift from what the image holds.
type VTOC struct {
	di *DiskImage
}

// VTOC returns a view over the image's volume table of contents
func (di *DiskImage) VTOC() *VTOC {
	return &VTOC{di: di}
}

func (v *VTOC) sector() []byte {
	// VTOCTrack/VTOCSector are compile-time constants inside geometry
	s, _ := v.di.sectorView(VTOCTrack, VTOCSector)
	return s
}

// Format initializes the VTOC and the first catalog sector. Every sector
// is marked free except the catalog track, which holds the VTOC and all
// present and future catalog sectors of a standard DOS 3.3 disk. This is
// the only place the bitmap is bulk-initialized.
func (v *VTOC) Format(volumeNumber byte) {
	s := v.sector()
	for i := range s {
		s[i] = 0
	}

	s[vtocCatalogTrack] = FirstCatalogTrack
	s[vtocCatalogSector] = FirstCatalogSector
	s[vtocDOSVersion] = DOSVersion
	s[vtocVolumeNumber] = volumeNumber
	s[vtocMaxTSPairs] = MaxTSPairsPerSector
	s[vtocTrackDir] = 1
	s[vtocTrackCount] = TracksPerDisk
	s[vtocSectorCount] = SectorsPerTrack
	s[vtocSectorBytesLo] = byte(BytesPerSector % 256)
	s[vtocSectorBytesHi] = byte(BytesPerSector / 256)

	for t := 0; t < TracksPerDisk; t++ {
		for sec := 0; sec < SectorsPerTrack; sec++ {
			if t == VTOCTrack {
				continue // catalog track stays marked used
			}
			v.MarkSectorFree(t, sec)
		}
	}

	// Zero the first catalog sector; a zero next-pointer terminates the
	// chain, so the freshly formatted catalog is a single empty sector.
	cat, _ := v.di.sectorView(FirstCatalogTrack, FirstCatalogSector)
	for i := range cat {
		cat[i] = 0
	}
}

// CatalogStart returns the track and sector of the first catalog sector
func (v *VTOC) CatalogStart() (track, sector int) {
	s := v.sector()
	return int(s[vtocCatalogTrack]), int(s[vtocCatalogSector])
}

// Version returns the DOS version tag
func (v *VTOC) Version() byte {
	return v.sector()[vtocDOSVersion]
}

// VolumeNumber returns the volume number
func (v *VTOC) VolumeNumber() byte {
	return v.sector()[vtocVolumeNumber]
}

// MaxTSPairs returns the declared track/sector pair capacity of one TSL sector
func (v *VTOC) MaxTSPairs() int {
	return int(v.sector()[vtocMaxTSPairs])
}

// Tracks returns the declared track count
func (v *VTOC) Tracks() int {
	return int(v.sector()[vtocTrackCount])
}

// Sectors returns the declared sectors-per-track count
func (v *VTOC) Sectors() int {
	return int(v.sector()[vtocSectorCount])
}

// SectorBytes returns the declared sector size
func (v *VTOC) SectorBytes() int {
	s := v.sector()
	return int(s[vtocSectorBytesLo]) + 256*int(s[vtocSectorBytesHi])
}

// bitmapPos locates the bitmap byte and bit for a sector. Each track has
// four bitmap bytes: the first holds sectors F..8 (bit 0 = sector 8), the
// second sectors 7..0, the last two are unused on a 16-sector disk.
func bitmapPos(track, sector int) (offset int, mask byte) {
	offset = vtocBitmap + track*4
	if sector < 8 {
		offset++
	}
	mask = 1 << uint(sector&0x07)
	return offset, mask
}

// IsSectorFree reports whether a sector is marked free in the bitmap
func (v *VTOC) IsSectorFree(track, sector int) (bool, error) {
	if _, err := SectorOffset(track, sector); err != nil {
		return false, err
	}
	offset, mask := bitmapPos(track, sector)
	return v.sector()[offset]&mask != 0, nil
}

// MarkSectorUsed clears a sector's free bit
func (v *VTOC) MarkSectorUsed(track, sector int) error {
	if _, err := SectorOffset(track, sector); err != nil {
		return err
	}
	offset, mask := bitmapPos(track, sector)
	v.sector()[offset] &^= mask
	return nil
}

// MarkSectorFree sets a sector's free bit
func (v *VTOC) MarkSectorFree(track, sector int) error {
	if _, err := SectorOffset(track, sector); err != nil {
		return err
	}
	offset, mask := bitmapPos(track, sector)
	v.sector()[offset] |= mask
	return nil
}

// FreeSectorCount returns the number of free sectors on the disk
func (v *VTOC) FreeSectorCount() int {
	count := 0
	for t := 0; t < TracksPerDisk; t++ {
		for s := 0; s < SectorsPerTrack; s++ {
			if free, _ := v.IsSectorFree(t, s); free {
				count++
			}
		}
	}
	return count
}

// TrackAllocation returns the allocation state of every sector in a track
// (true = used)
func (v *VTOC) TrackAllocation(track int) ([]bool, error) {
	if track < 0 || track >= TracksPerDisk {
		return nil, ErrInvalidTrack
	}
	used := make([]bool, SectorsPerTrack)
	for s := 0; s < SectorsPerTrack; s++ {
		free, err := v.IsSectorFree(track, s)
		if err != nil {
			return nil, err
		}
		used[s] = !free
	}
	return used, nil
}
