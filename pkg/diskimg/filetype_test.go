// file: pkg/diskimg/filetype_test.go

package diskimg

import (
	"strings"
	"testing"
)

func TestFileTypeTags(t *testing.T) {
	tests := []struct {
		ft   FileType
		ext  string
		name string
	}{
		{FileTypeText, "TXT", "ASCII Text"},
		{FileTypeIntegerBasic, "INT", "Integer Basic Program"},
		{FileTypeApplesoft, "BAS", "Applesoft Basic Program"},
		{FileTypeBinary, "BIN", "Binary File"},
	}

	for _, tt := range tests {
		if !tt.ft.IsValid() {
			t.Errorf("%s reported invalid", tt.ext)
		}
		if tt.ft.Ext() != tt.ext {
			t.Errorf("Ext: got %s, want %s", tt.ft.Ext(), tt.ext)
		}
		if tt.ft.String() != tt.name {
			t.Errorf("String: got %s, want %s", tt.ft.String(), tt.name)
		}
	}

	if FileType(0x03).IsValid() {
		t.Error("0x03 is not a DOS 3.3 type tag")
	}
}

func TestFileTypeFromExt(t *testing.T) {
	tests := []struct {
		ext  string
		want FileType
	}{
		{".txt", FileTypeText},
		{"TXT", FileTypeText},
		{".bas", FileTypeApplesoft},
		{".bin", FileTypeBinary},
		{".xyz", FileTypeBinary}, // unknown defaults to binary
		{"", FileTypeBinary},
	}

	for _, tt := range tests {
		if got := FileTypeFromExt(tt.ext); got != tt.want {
			t.Errorf("FileTypeFromExt(%q) = %v, want %v", tt.ext, got, tt.want)
		}
	}
}

func TestFilenameEncoding(t *testing.T) {
	field := encodeFilename("hello")

	// Upper-cased, high bit set on every byte, 0xA0 padding
	want := "HELLO"
	for i := 0; i < len(want); i++ {
		if field[i] != want[i]|0x80 {
			t.Errorf("Byte %d: got 0x%02X, want 0x%02X", i, field[i], want[i]|0x80)
		}
	}
	for i := len(want); i < MaxFilenameLength; i++ {
		if field[i] != 0xA0 {
			t.Errorf("Padding byte %d: got 0x%02X, want 0xA0", i, field[i])
		}
	}

	if got := decodeFilename(field[:]); got != "HELLO" {
		t.Errorf("Round trip: got %q, want HELLO", got)
	}
}

func TestFilenameTruncation(t *testing.T) {
	long := strings.Repeat("A", MaxFilenameLength+10)
	field := encodeFilename(long)

	decoded := decodeFilename(field[:])
	if len(decoded) != MaxFilenameLength {
		t.Errorf("Truncated name is %d chars, want %d", len(decoded), MaxFilenameLength)
	}
	if decoded != strings.Repeat("A", MaxFilenameLength) {
		t.Errorf("Truncated name: got %q", decoded)
	}
}
