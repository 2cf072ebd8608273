// file: pkg/diskimg/catalog.go

package diskimg

import (
	"fmt"
	"strings"
)

const (
	// Catalog sector layout: forward pointer at 0x01/0x02, then seven
	// 35-byte entries starting at 0x0B
	CatalogEntrySize        = 35
	EntriesPerCatalogSector = 7
	catalogNextTrack        = 0x01
	catalogNextSector       = 0x02
	catalogEntryBase        = 0x0B

	// First entry byte (the TSL track) doubles as the slot state:
	// 0x00 = never used, 0xFF = deleted
	entryUnused  = 0x00
	entryDeleted = 0xFF

	// Entry field offsets
	entryTSLTrack    = 0
	entryTSLSector   = 1
	entryTypeByte    = 2
	entryNameField   = 3
	entrySectorCount = 33

	// A catalog chain can never be longer than the sector count of the
	// disk; anything past that is a cycle or garbage pointers.
	maxCatalogHops = TracksPerDisk * SectorsPerTrack
)

// CatalogEntry is one 35-byte directory record: the address of the
// file's first track-sector list, its type and lock state, the name, and
// the count of data sectors the file occupies.
type CatalogEntry struct {
	Name        string
	Type        FileType
	Locked      bool
	TSLStart    TrackSector
	SectorCount int

	pos entryPos // record location within the catalog, set once written
}

type entryPos struct {
	ts   TrackSector
	slot int
}

func decodeEntry(raw []byte, pos entryPos) CatalogEntry {
	return CatalogEntry{
		Name:        decodeFilename(raw[entryNameField : entryNameField+MaxFilenameLength]),
		Type:        FileType(raw[entryTypeByte] &^ lockFlag),
		Locked:      raw[entryTypeByte]&lockFlag != 0,
		TSLStart:    TrackSector{Track: int(raw[entryTSLTrack]), Sector: int(raw[entryTSLSector])},
		SectorCount: int(raw[entrySectorCount]) + 256*int(raw[entrySectorCount+1]),
		pos:         pos,
	}
}

func encodeEntry(e *CatalogEntry, raw []byte) {
	raw[entryTSLTrack] = byte(e.TSLStart.Track)
	raw[entryTSLSector] = byte(e.TSLStart.Sector)
	typeByte := byte(e.Type)
	if e.Locked {
		typeByte |= lockFlag
	}
	raw[entryTypeByte] = typeByte
	name := encodeFilename(e.Name)
	copy(raw[entryNameField:], name[:])
	raw[entrySectorCount] = byte(e.SectorCount % 256)
	raw[entrySectorCount+1] = byte(e.SectorCount / 256)
}

// isLiveEntry reports whether a raw record describes a live file
func isLiveEntry(raw []byte) bool {
	return raw[entryTSLTrack] != entryUnused && raw[entryTSLTrack] != entryDeleted
}

// walkCatalog visits every catalog sector in chain order, calling fn with
// the sector address and its live view. Traversal is bounded and keeps a
// visited set, so it terminates on corrupt or cyclic chains.
func (di *DiskImage) walkCatalog(fn func(ts TrackSector, sec []byte) (stop bool, err error)) error {
	t, s := di.VTOC().CatalogStart()
	visited := make(map[TrackSector]bool)

	for hops := 0; hops < maxCatalogHops; hops++ {
		if t == 0 {
			return nil // end of chain
		}
		ts := TrackSector{Track: t, Sector: s}
		if visited[ts] {
			return fmt.Errorf("%w: catalog chain revisits track %d sector %d", ErrCorruptImage, t, s)
		}
		visited[ts] = true

		sec, err := di.sectorView(t, s)
		if err != nil {
			return fmt.Errorf("%w: catalog chain points at track %d sector %d", ErrCorruptImage, t, s)
		}
		stop, err := fn(ts, sec)
		if err != nil || stop {
			return err
		}
		t, s = int(sec[catalogNextTrack]), int(sec[catalogNextSector])
	}
	return fmt.Errorf("%w: catalog chain exceeds %d sectors", ErrCorruptImage, maxCatalogHops)
}

// AppendEntry writes a new catalog record into the first free slot,
// growing the chain by one freshly allocated sector when every existing
// slot is taken. Slots of deleted files are reused; live records are
// never overwritten. Fails with ErrCatalogFull only when the growth
// allocation itself cannot be satisfied.
func (di *DiskImage) AppendEntry(e *CatalogEntry) error {
	var last TrackSector
	written := false

	err := di.walkCatalog(func(ts TrackSector, sec []byte) (bool, error) {
		last = ts
		for slot := 0; slot < EntriesPerCatalogSector; slot++ {
			raw := sec[catalogEntryBase+slot*CatalogEntrySize:]
			if raw[entryTSLTrack] == entryUnused || raw[entryTSLTrack] == entryDeleted {
				encodeEntry(e, raw)
				e.pos = entryPos{ts: ts, slot: slot}
				written = true
				return true, nil
			}
		}
		return false, nil
	})
	if err != nil {
		return err
	}
	if written {
		return nil
	}

	// Chain exhausted: allocate, zero and link a new catalog sector
	next, err := di.AllocateSector()
	if err != nil {
		return ErrCatalogFull
	}
	sec, err := di.sectorView(next.Track, next.Sector)
	if err != nil {
		return err
	}
	for i := range sec {
		sec[i] = 0
	}
	encodeEntry(e, sec[catalogEntryBase:])
	e.pos = entryPos{ts: next, slot: 0}

	prev, err := di.sectorView(last.Track, last.Sector)
	if err != nil {
		return err
	}
	prev[catalogNextTrack] = byte(next.Track)
	prev[catalogNextSector] = byte(next.Sector)
	return nil
}

// Files returns the live catalog entries in chain order
func (di *DiskImage) Files() ([]CatalogEntry, error) {
	var files []CatalogEntry
	err := di.walkCatalog(func(ts TrackSector, sec []byte) (bool, error) {
		for slot := 0; slot < EntriesPerCatalogSector; slot++ {
			raw := sec[catalogEntryBase+slot*CatalogEntrySize : catalogEntryBase+(slot+1)*CatalogEntrySize]
			if isLiveEntry(raw) {
				files = append(files, decodeEntry(raw, entryPos{ts: ts, slot: slot}))
			}
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// FindFile looks up a live catalog entry by name, case-insensitively
func (di *DiskImage) FindFile(name string) (*CatalogEntry, error) {
	files, err := di.Files()
	if err != nil {
		return nil, err
	}
	for i := range files {
		if strings.EqualFold(files[i].Name, name) {
			return &files[i], nil
		}
	}
	return nil, ErrFileNotFound
}

// updateEntry re-encodes an entry into its existing catalog slot
func (di *DiskImage) updateEntry(e *CatalogEntry) error {
	sec, err := di.sectorView(e.pos.ts.Track, e.pos.ts.Sector)
	if err != nil {
		return err
	}
	encodeEntry(e, sec[catalogEntryBase+e.pos.slot*CatalogEntrySize:])
	return nil
}

// markEntryDeleted flags an entry's slot as deleted (0xFF in the TSL
// track byte), leaving the rest of the record in place the way DOS does
func (di *DiskImage) markEntryDeleted(e *CatalogEntry) error {
	sec, err := di.sectorView(e.pos.ts.Track, e.pos.ts.Sector)
	if err != nil {
		return err
	}
	sec[catalogEntryBase+e.pos.slot*CatalogEntrySize+entryTSLTrack] = entryDeleted
	return nil
}
