// file: pkg/diskimg/hostio_test.go

package diskimg

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func writeHostFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDiskNameFromHostPath(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"hello.txt", "HELLO"},
		{"/some/dir/Game.bin", "GAME"},
		{"noext", "NOEXT"},
	}
	for _, tt := range tests {
		if got := DiskNameFromHostPath(tt.path); got != tt.want {
			t.Errorf("DiskNameFromHostPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestImportFile(t *testing.T) {
	di := NewDiskImage()
	di.Format(DefaultVolumeNumber)

	testData := []byte("10 PRINT \"HELLO\"\n20 GOTO 10\n")
	hostPath := writeHostFile(t, t.TempDir(), "hello.bas", testData)

	entry, err := di.ImportFile(hostPath, nil)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if entry.Name != "HELLO" {
		t.Errorf("Name: got %q, want HELLO", entry.Name)
	}
	if entry.Type != FileTypeApplesoft {
		t.Errorf("Type: got %v, want %v (not inferred from extension)", entry.Type, FileTypeApplesoft)
	}

	readBack, err := di.ReadFile("HELLO")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !bytes.Equal(readBack[:len(testData)], testData) {
		t.Error("Imported content mismatch")
	}
}

func TestImportFileBinary(t *testing.T) {
	di := NewDiskImage()
	di.Format(DefaultVolumeNumber)

	payload := bytes.Repeat([]byte{0xEA}, 50)
	hostPath := writeHostFile(t, t.TempDir(), "prog.bin", payload)

	opts := DefaultImportOptions()
	opts.LoadAddr = 0x0803
	entry, err := di.ImportFile(hostPath, opts)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if entry.Type != FileTypeBinary {
		t.Fatalf("Type: got %v, want %v", entry.Type, FileTypeBinary)
	}

	loadAddr, data, err := di.ReadBinaryFile("PROG")
	if err != nil {
		t.Fatalf("ReadBinaryFile failed: %v", err)
	}
	if loadAddr != 0x0803 {
		t.Errorf("Load address: got 0x%04X, want 0x0803", loadAddr)
	}
	if !bytes.Equal(data, payload) {
		t.Error("Binary payload mismatch")
	}
}

func TestImportDirectory(t *testing.T) {
	di := NewDiskImage()
	di.Format(DefaultVolumeNumber)

	dir := t.TempDir()
	writeHostFile(t, dir, "beta.txt", []byte("second"))
	writeHostFile(t, dir, "alpha.txt", []byte("first"))
	writeHostFile(t, dir, "empty.txt", nil) // skipped

	added, err := di.ImportDirectory(dir, nil)
	if err != nil {
		t.Fatalf("ImportDirectory failed: %v", err)
	}
	if len(added) != 2 {
		t.Fatalf("Imported %d files, want 2: %v", len(added), added)
	}
	// Name order, not directory order
	if added[0] != "ALPHA" || added[1] != "BETA" {
		t.Errorf("Import order: got %v, want [ALPHA BETA]", added)
	}
}

func TestExportFile(t *testing.T) {
	di := NewDiskImage()
	di.Format(DefaultVolumeNumber)
	dir := t.TempDir()

	payload := bytes.Repeat([]byte{0x5A}, 300)
	if _, err := di.AddBinaryFile("PICTURE", payload, 0x2000); err != nil {
		t.Fatalf("AddBinaryFile failed: %v", err)
	}
	if _, err := di.AddFile("NOTES", []byte("some text"), FileTypeText); err != nil {
		t.Fatalf("AddFile failed: %v", err)
	}

	// Binary export trims to the recorded length
	binOut := filepath.Join(dir, "picture.bin")
	if err := di.ExportFile("PICTURE", binOut); err != nil {
		t.Fatalf("ExportFile failed: %v", err)
	}
	got, err := os.ReadFile(binOut)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Exported binary is %d bytes, want %d exact", len(got), len(payload))
	}

	// Text export is whole sectors
	txtOut := filepath.Join(dir, "notes.txt")
	if err := di.ExportFile("NOTES", txtOut); err != nil {
		t.Fatalf("ExportFile failed: %v", err)
	}
	got, err = os.ReadFile(txtOut)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != BytesPerSector {
		t.Errorf("Exported text is %d bytes, want %d", len(got), BytesPerSector)
	}

	if err := di.ExportFile("MISSING", filepath.Join(dir, "x")); err != ErrFileNotFound {
		t.Errorf("Export of missing file: got %v, want %v", err, ErrFileNotFound)
	}
}
