// file: pkg/diskimg/diskcheck.go

package diskimg

import "fmt"

// CheckResult is one independent verification check
type CheckResult struct {
	Name   string
	OK     bool
	Detail string
}

// FileReport describes one live catalog entry and the state of its
// track-sector list chain
type FileReport struct {
	Name        string
	Type        FileType
	Locked      bool
	SectorCount int
	TSLSectors  int
	DataSectors int
	OK          bool
	Detail      string
}

// Report is the accumulated result of a full consistency check. Checks
// are independent; a failing check never suppresses the ones after it, so
// one pass yields a complete diagnosis.
type Report struct {
	Checks []CheckResult
	Files  []FileReport
}

// OK reports whether every check and every file passed
func (r *Report) OK() bool {
	for _, c := range r.Checks {
		if !c.OK {
			return false
		}
	}
	for _, f := range r.Files {
		if !f.OK {
			return false
		}
	}
	return true
}

// Failures lists the detail lines of everything that failed
func (r *Report) Failures() []string {
	var out []string
	for _, c := range r.Checks {
		if !c.OK {
			out = append(out, fmt.Sprintf("%s: %s", c.Name, c.Detail))
		}
	}
	for _, f := range r.Files {
		if !f.OK {
			out = append(out, fmt.Sprintf("file %s: %s", f.Name, f.Detail))
		}
	}
	return out
}

func (r *Report) add(name string, err error) {
	c := CheckResult{Name: name, OK: err == nil}
	if err != nil {
		c.Detail = err.Error()
	}
	r.Checks = append(r.Checks, c)
}

// DiskCheck performs a read-only consistency audit of a disk image
type DiskCheck struct {
	di *DiskImage
}

// NewDiskCheck creates a checker for an already loaded image
func NewDiskCheck(di *DiskImage) *DiskCheck {
	return &DiskCheck{di: di}
}

// Verify checks a raw image buffer and returns the full report. A buffer
// of the wrong size fails the size check and skips the structural checks,
// since none of the fixed offsets are meaningful in it.
func Verify(imageBytes []byte) *Report {
	report := &Report{}
	if len(imageBytes) != DiskSizeInBytes {
		report.Checks = append(report.Checks, CheckResult{
			Name:   "image size",
			Detail: fmt.Sprintf("image is %d bytes, want %d", len(imageBytes), DiskSizeInBytes),
		})
		return report
	}
	report.Checks = append(report.Checks, CheckResult{Name: "image size", OK: true})

	di, _ := LoadImage(imageBytes)
	NewDiskCheck(di).run(report)
	return report
}

// Run audits the image and returns the accumulated report
func (dc *DiskCheck) Run() *Report {
	report := &Report{}
	report.Checks = append(report.Checks, CheckResult{Name: "image size", OK: true})
	dc.run(report)
	return report
}

func (dc *DiskCheck) run(report *Report) {
	report.add("vtoc geometry", dc.di.validateGeometryFields())
	report.add("dos version", dc.di.validateVersionField())
	report.add("catalog pointer", dc.di.validateCatalogPointer())
	report.add("catalog chain", dc.checkCatalogChain())

	files, err := dc.di.Files()
	if err != nil {
		// Already reported by the chain check; nothing more to audit
		return
	}

	claimed := make(map[TrackSector]string)
	var bitmapErr, collisionErr error

	for _, entry := range files {
		fr := FileReport{
			Name:        entry.Name,
			Type:        entry.Type,
			Locked:      entry.Locked,
			SectorCount: entry.SectorCount,
			OK:          true,
		}

		tsl, data, err := dc.di.fileSectors(&entry)
		if err != nil {
			fr.OK = false
			fr.Detail = err.Error()
			report.Files = append(report.Files, fr)
			continue
		}
		fr.TSLSectors = len(tsl)
		fr.DataSectors = len(data)

		if len(data) != entry.SectorCount {
			fr.OK = false
			fr.Detail = fmt.Sprintf("catalog declares %d data sectors, chain holds %d", entry.SectorCount, len(data))
		}

		for _, ts := range append(append([]TrackSector{}, tsl...), data...) {
			if free, _ := dc.di.VTOC().IsSectorFree(ts.Track, ts.Sector); free && bitmapErr == nil {
				bitmapErr = fmt.Errorf("track %d sector %d is referenced by %s but marked free", ts.Track, ts.Sector, entry.Name)
			}
			if owner, taken := claimed[ts]; taken && collisionErr == nil {
				collisionErr = fmt.Errorf("track %d sector %d claimed by both %s and %s", ts.Track, ts.Sector, owner, entry.Name)
			}
			claimed[ts] = entry.Name
		}

		report.Files = append(report.Files, fr)
	}

	report.add("bitmap consistency", bitmapErr)
	report.add("sector collisions", collisionErr)
}

// checkCatalogChain walks the catalog within its hop bound and verifies
// that every occupied slot carries a known file type tag
func (dc *DiskCheck) checkCatalogChain() error {
	var badEntry error
	err := dc.di.walkCatalog(func(ts TrackSector, sec []byte) (bool, error) {
		for slot := 0; slot < EntriesPerCatalogSector; slot++ {
			raw := sec[catalogEntryBase+slot*CatalogEntrySize:]
			if !isLiveEntry(raw) {
				continue
			}
			tag := FileType(raw[entryTypeByte] &^ lockFlag)
			if !tag.IsValid() && badEntry == nil {
				badEntry = fmt.Errorf("entry %d in track %d sector %d has unknown type tag 0x%02X", slot, ts.Track, ts.Sector, raw[entryTypeByte])
			}
		}
		return false, nil
	})
	if err != nil {
		return err
	}
	return badEntry
}
