// file: pkg/diskimg/allocation.go

package diskimg

// TrackSector is the two-level address of a 256-byte sector on the disk
type TrackSector struct {
	Track  int
	Sector int
}

// allocationOrder is the fixed track scan order: start at the track next
// to the catalog track and alternate outward (16, 18, 15, 19, ...), with
// the catalog track itself last. Allocating near the catalog minimized
// head seeks on real hardware; here it matters because images must be
// reproducible, so the order has to be deterministic and exhaustive.
var allocationOrder = buildAllocationOrder()

func buildAllocationOrder() []int {
	order := make([]int, 0, TracksPerDisk)
	for d := 1; d < TracksPerDisk; d++ {
		if t := VTOCTrack - d; t >= 0 {
			order = append(order, t)
		}
		if t := VTOCTrack + d; t < TracksPerDisk {
			order = append(order, t)
		}
	}
	return append(order, VTOCTrack)
}

// AllocateSector finds the first free sector in scan order, marks it used
// and returns its address. Fails with ErrDiskFull when no sector is free.
func (di *DiskImage) AllocateSector() (TrackSector, error) {
	v := di.VTOC()
	for _, t := range allocationOrder {
		for s := SectorsPerTrack - 1; s >= 0; s-- {
			free, err := v.IsSectorFree(t, s)
			if err != nil {
				return TrackSector{}, err
			}
			if free {
				if err := v.MarkSectorUsed(t, s); err != nil {
					return TrackSector{}, err
				}
				return TrackSector{Track: t, Sector: s}, nil
			}
		}
	}
	return TrackSector{}, ErrDiskFull
}

// findFreeSectors collects count free sectors in scan order without
// marking any of them used. AddFile plans its whole allocation this way
// before touching the image, which is what makes its failure path free of
// rollback work in the common case.
func (di *DiskImage) findFreeSectors(count int) ([]TrackSector, error) {
	v := di.VTOC()
	found := make([]TrackSector, 0, count)
	for _, t := range allocationOrder {
		for s := SectorsPerTrack - 1; s >= 0; s-- {
			if len(found) == count {
				return found, nil
			}
			free, err := v.IsSectorFree(t, s)
			if err != nil {
				return nil, err
			}
			if free {
				found = append(found, TrackSector{Track: t, Sector: s})
			}
		}
	}
	if len(found) < count {
		return nil, ErrDiskFull
	}
	return found, nil
}
