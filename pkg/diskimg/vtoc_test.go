// file: pkg/diskimg/vtoc_test.go

package diskimg

import "testing"

func TestFormatVTOCFields(t *testing.T) {
	di := NewDiskImage()
	di.Format(100)

	v := di.VTOC()
	if v.Version() != DOSVersion {
		t.Errorf("Version: got %d, want %d", v.Version(), DOSVersion)
	}
	if v.VolumeNumber() != 100 {
		t.Errorf("VolumeNumber: got %d, want 100", v.VolumeNumber())
	}
	if v.MaxTSPairs() != MaxTSPairsPerSector {
		t.Errorf("MaxTSPairs: got %d, want %d", v.MaxTSPairs(), MaxTSPairsPerSector)
	}
	if v.Tracks() != TracksPerDisk {
		t.Errorf("Tracks: got %d, want %d", v.Tracks(), TracksPerDisk)
	}
	if v.Sectors() != SectorsPerTrack {
		t.Errorf("Sectors: got %d, want %d", v.Sectors(), SectorsPerTrack)
	}
	if v.SectorBytes() != BytesPerSector {
		t.Errorf("SectorBytes: got %d, want %d", v.SectorBytes(), BytesPerSector)
	}

	ct, cs := v.CatalogStart()
	if ct != FirstCatalogTrack || cs != FirstCatalogSector {
		t.Errorf("CatalogStart: got (%d, %d), want (%d, %d)", ct, cs, FirstCatalogTrack, FirstCatalogSector)
	}
}

func TestFormatBitmap(t *testing.T) {
	di := NewDiskImage()
	di.Format(DefaultVolumeNumber)

	v := di.VTOC()
	for track := 0; track < TracksPerDisk; track++ {
		for sector := 0; sector < SectorsPerTrack; sector++ {
			free, err := v.IsSectorFree(track, sector)
			if err != nil {
				t.Fatalf("IsSectorFree(%d, %d) failed: %v", track, sector, err)
			}
			wantFree := track != VTOCTrack
			if free != wantFree {
				t.Errorf("Track %d sector %d: free=%v, want %v", track, sector, free, wantFree)
			}
		}
	}

	want := (TracksPerDisk - 1) * SectorsPerTrack
	if got := v.FreeSectorCount(); got != want {
		t.Errorf("FreeSectorCount: got %d, want %d", got, want)
	}
}

func TestBitmapMarkRoundTrip(t *testing.T) {
	di := NewDiskImage()
	di.Format(DefaultVolumeNumber)
	v := di.VTOC()

	if err := v.MarkSectorUsed(10, 3); err != nil {
		t.Fatalf("MarkSectorUsed failed: %v", err)
	}
	if free, _ := v.IsSectorFree(10, 3); free {
		t.Error("Sector still free after MarkSectorUsed")
	}

	if err := v.MarkSectorFree(10, 3); err != nil {
		t.Fatalf("MarkSectorFree failed: %v", err)
	}
	if free, _ := v.IsSectorFree(10, 3); !free {
		t.Error("Sector still used after MarkSectorFree")
	}

	// Marking one sector must not disturb its neighbors
	if err := v.MarkSectorUsed(10, 8); err != nil {
		t.Fatalf("MarkSectorUsed failed: %v", err)
	}
	for s := 0; s < SectorsPerTrack; s++ {
		free, _ := v.IsSectorFree(10, s)
		if s == 8 && free {
			t.Error("Sector 8 still free")
		}
		if s != 8 && !free {
			t.Errorf("Sector %d disturbed by marking sector 8", s)
		}
	}
}

func TestBitmapByteLayout(t *testing.T) {
	// Sectors 8..15 live in the first bitmap byte of a track, 0..7 in
	// the second, bit = sector mod 8
	tests := []struct {
		track, sector int
		wantOffset    int
		wantMask      byte
	}{
		{0, 15, 0x38, 0x80},
		{0, 8, 0x38, 0x01},
		{0, 7, 0x39, 0x80},
		{0, 0, 0x39, 0x01},
		{1, 15, 0x3C, 0x80},
		{34, 0, 0x38 + 34*4 + 1, 0x01},
	}

	for _, tt := range tests {
		offset, mask := bitmapPos(tt.track, tt.sector)
		if offset != tt.wantOffset || mask != tt.wantMask {
			t.Errorf("bitmapPos(%d, %d) = (0x%02X, 0x%02X), want (0x%02X, 0x%02X)",
				tt.track, tt.sector, offset, mask, tt.wantOffset, tt.wantMask)
		}
	}
}

func TestBitmapBoundsChecked(t *testing.T) {
	di := NewDiskImage()
	v := di.VTOC()

	if _, err := v.IsSectorFree(TracksPerDisk, 0); err != ErrInvalidTrack {
		t.Errorf("IsSectorFree out of range: got %v, want %v", err, ErrInvalidTrack)
	}
	if err := v.MarkSectorUsed(0, SectorsPerTrack); err != ErrInvalidSector {
		t.Errorf("MarkSectorUsed out of range: got %v, want %v", err, ErrInvalidSector)
	}
	if err := v.MarkSectorFree(-1, 0); err != ErrInvalidTrack {
		t.Errorf("MarkSectorFree out of range: got %v, want %v", err, ErrInvalidTrack)
	}
}

func TestTrackAllocation(t *testing.T) {
	di := NewDiskImage()
	di.Format(DefaultVolumeNumber)
	v := di.VTOC()

	used, err := v.TrackAllocation(VTOCTrack)
	if err != nil {
		t.Fatalf("TrackAllocation failed: %v", err)
	}
	for s, u := range used {
		if !u {
			t.Errorf("Catalog track sector %d reported free after format", s)
		}
	}

	if _, err := v.TrackAllocation(TracksPerDisk); err != ErrInvalidTrack {
		t.Errorf("TrackAllocation out of range: got %v, want %v", err, ErrInvalidTrack)
	}
}
