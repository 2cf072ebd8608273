// file: pkg/disk/disk_test.go

package disk

import (
	"bytes"
	"strings"
	"testing"

	"dos33disk/pkg/diskimg"
)

func TestBuild(t *testing.T) {
	files := []FileSpec{
		{Name: "HELLO", Data: []byte("HELLO, WORLD"), Type: diskimg.FileTypeText},
		{Name: "GAME", Data: bytes.Repeat([]byte{0xEA}, 400), Type: diskimg.FileTypeBinary, LoadAddr: 0x0803},
	}
	opts := DefaultBuildOptions()
	opts.BootSector = bytes.Repeat([]byte{0x01}, diskimg.BytesPerSector)

	di, err := Build(files, opts)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if report := diskimg.Verify(di.Bytes()); !report.OK() {
		t.Fatalf("Built image failed verification: %v", report.Failures())
	}

	catalog, err := di.Files()
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}
	if len(catalog) != 2 {
		t.Fatalf("Got %d files, want 2", len(catalog))
	}

	loadAddr, data, err := di.ReadBinaryFile("GAME")
	if err != nil {
		t.Fatalf("ReadBinaryFile failed: %v", err)
	}
	if loadAddr != 0x0803 || len(data) != 400 {
		t.Errorf("Binary round trip: addr 0x%04X len %d, want 0x0803 len 400", loadAddr, len(data))
	}
}

func TestBuildFailsWhole(t *testing.T) {
	// The second file is too big; no partial image comes back
	files := []FileSpec{
		{Name: "OK", Data: []byte("fine"), Type: diskimg.FileTypeText},
		{Name: "HUGE", Data: make([]byte, diskimg.DiskSizeInBytes), Type: diskimg.FileTypeText},
	}

	di, err := Build(files, nil)
	if err == nil {
		t.Fatal("Build with an oversized file succeeded")
	}
	if di != nil {
		t.Error("Failed build returned a partial image")
	}
}

func TestDetails(t *testing.T) {
	di, err := Build([]FileSpec{
		{Name: "ONE", Data: []byte("x"), Type: diskimg.FileTypeText},
	}, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	details, err := Details(di)
	if err != nil {
		t.Fatalf("Details failed: %v", err)
	}
	for _, want := range []string{"Volume Number: 254", "DOS Version: 3", "Files: 1"} {
		if !strings.Contains(details, want) {
			t.Errorf("Details missing %q:\n%s", want, details)
		}
	}
}
