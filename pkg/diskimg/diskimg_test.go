// file: pkg/diskimg/diskimg_test.go

package diskimg

import (
	"bytes"
	"testing"
)

func TestSectorOffsetCoversImage(t *testing.T) {
	seen := make(map[int]bool)

	for track := 0; track < TracksPerDisk; track++ {
		for sector := 0; sector < SectorsPerTrack; sector++ {
			offset, err := SectorOffset(track, sector)
			if err != nil {
				t.Fatalf("SectorOffset(%d, %d) failed: %v", track, sector, err)
			}
			if offset < 0 || offset+BytesPerSector > DiskSizeInBytes {
				t.Errorf("SectorOffset(%d, %d) = %d, outside image", track, sector, offset)
			}
			if offset%BytesPerSector != 0 {
				t.Errorf("SectorOffset(%d, %d) = %d, not sector aligned", track, sector, offset)
			}
			if seen[offset] {
				t.Errorf("SectorOffset(%d, %d) = %d, already mapped", track, sector, offset)
			}
			seen[offset] = true
		}
	}

	if len(seen) != TracksPerDisk*SectorsPerTrack {
		t.Errorf("Mapped %d distinct sectors, want %d", len(seen), TracksPerDisk*SectorsPerTrack)
	}
}

func TestSectorOffsetBounds(t *testing.T) {
	tests := []struct {
		track, sector int
		wantErr       error
	}{
		{-1, 0, ErrInvalidTrack},
		{TracksPerDisk, 0, ErrInvalidTrack},
		{0, -1, ErrInvalidSector},
		{0, SectorsPerTrack, ErrInvalidSector},
	}

	for _, tt := range tests {
		if _, err := SectorOffset(tt.track, tt.sector); err != tt.wantErr {
			t.Errorf("SectorOffset(%d, %d): got %v, want %v", tt.track, tt.sector, err, tt.wantErr)
		}
	}
}

func TestSetSectorDataOverflow(t *testing.T) {
	di := NewDiskImage()

	tooBig := make([]byte, BytesPerSector+1)
	if err := di.SetSectorData(0, 0, tooBig); err != ErrSectorOverflow {
		t.Errorf("Oversized write: got %v, want %v", err, ErrSectorOverflow)
	}

	// A short write leaves the rest of the sector untouched
	if err := di.SetSectorData(3, 5, []byte{0xAA, 0xBB}); err != nil {
		t.Fatalf("Short write failed: %v", err)
	}
	sec, err := di.GetSectorData(3, 5)
	if err != nil {
		t.Fatalf("GetSectorData failed: %v", err)
	}
	if sec[0] != 0xAA || sec[1] != 0xBB {
		t.Errorf("Short write content: got %02X %02X, want AA BB", sec[0], sec[1])
	}
	for i := 2; i < BytesPerSector; i++ {
		if sec[i] != 0 {
			t.Fatalf("Byte %d disturbed by short write: %02X", i, sec[i])
		}
	}
}

func TestGetSectorDataReturnsCopy(t *testing.T) {
	di := NewDiskImage()
	if err := di.SetSectorData(1, 1, []byte{0x11}); err != nil {
		t.Fatalf("SetSectorData failed: %v", err)
	}

	sec, err := di.GetSectorData(1, 1)
	if err != nil {
		t.Fatalf("GetSectorData failed: %v", err)
	}
	sec[0] = 0x99

	again, _ := di.GetSectorData(1, 1)
	if again[0] != 0x11 {
		t.Error("Mutating the returned slice changed the image")
	}
}

func TestSnapshotRestore(t *testing.T) {
	di := NewDiskImage()
	di.Format(DefaultVolumeNumber)

	before := di.snapshot()
	if err := di.SetSectorData(5, 5, []byte("scribble")); err != nil {
		t.Fatalf("SetSectorData failed: %v", err)
	}
	di.restore(before)

	if !bytes.Equal(di.Bytes(), before) {
		t.Error("Restored image differs from snapshot")
	}
}
