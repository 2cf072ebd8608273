// file: pkg/diskimg/validation.go

package diskimg

import "fmt"

// ValidationError represents a specific disk format validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error - %s: %s", e.Field, e.Message)
}

// validateGeometryFields checks the VTOC's declared geometry against the
// fixed 5.25" disk constants
func (di *DiskImage) validateGeometryFields() error {
	v := di.VTOC()

	if v.Tracks() != TracksPerDisk {
		return &ValidationError{
			Field:   "VTOC.Tracks",
			Message: fmt.Sprintf("expected %d tracks, got %d", TracksPerDisk, v.Tracks()),
		}
	}

	if v.Sectors() != SectorsPerTrack {
		return &ValidationError{
			Field:   "VTOC.Sectors",
			Message: fmt.Sprintf("expected %d sectors per track, got %d", SectorsPerTrack, v.Sectors()),
		}
	}

	if v.SectorBytes() != BytesPerSector {
		return &ValidationError{
			Field:   "VTOC.SectorBytes",
			Message: fmt.Sprintf("expected %d bytes per sector, got %d", BytesPerSector, v.SectorBytes()),
		}
	}

	return nil
}

// validateVersionField checks the DOS version tag
func (di *DiskImage) validateVersionField() error {
	if v := di.VTOC().Version(); v != DOSVersion {
		return &ValidationError{
			Field:   "VTOC.Version",
			Message: fmt.Sprintf("expected DOS version %d, got %d", DOSVersion, v),
		}
	}
	return nil
}

// validateCatalogPointer checks that the VTOC's first-catalog pointer is
// an addressable sector
func (di *DiskImage) validateCatalogPointer() error {
	t, s := di.VTOC().CatalogStart()
	if _, err := SectorOffset(t, s); err != nil {
		return &ValidationError{
			Field:   "VTOC.CatalogStart",
			Message: fmt.Sprintf("points outside the disk: track %d sector %d", t, s),
		}
	}
	return nil
}
