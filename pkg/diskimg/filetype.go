// file: pkg/diskimg/filetype.go

package diskimg

import "strings"

// FileType is the DOS 3.3 catalog file type tag. The high bit of the
// type byte is the lock flag and is kept separate from the tag.
type FileType byte

const (
	FileTypeText         FileType = 0x00
	FileTypeIntegerBasic FileType = 0x01
	FileTypeApplesoft    FileType = 0x02
	FileTypeBinary       FileType = 0x04
	FileTypeS            FileType = 0x08
	FileTypeRelocatable  FileType = 0x10
	FileTypeA            FileType = 0x20
	FileTypeB            FileType = 0x40

	lockFlag = 0x80
)

var fileTypeInfo = map[FileType][2]string{
	FileTypeText:         {"TXT", "ASCII Text"},
	FileTypeIntegerBasic: {"INT", "Integer Basic Program"},
	FileTypeApplesoft:    {"BAS", "Applesoft Basic Program"},
	FileTypeBinary:       {"BIN", "Binary File"},
	FileTypeS:            {"S", "S Type File"},
	FileTypeRelocatable:  {"REL", "Relocatable Object Code"},
	FileTypeA:            {"A", "A Type File"},
	FileTypeB:            {"B", "B Type File"},
}

// IsValid reports whether the tag is one of the defined DOS 3.3 kinds
func (ft FileType) IsValid() bool {
	_, ok := fileTypeInfo[ft]
	return ok
}

func (ft FileType) String() string {
	if info, ok := fileTypeInfo[ft]; ok {
		return info[1]
	}
	return "Unknown"
}

// Ext returns the conventional host file extension for the type
func (ft FileType) Ext() string {
	if info, ok := fileTypeInfo[ft]; ok {
		return info[0]
	}
	return "BIN"
}

// FileTypeFromExt maps a host file extension to a DOS 3.3 type tag.
// Unrecognized extensions import as binary.
func FileTypeFromExt(ext string) FileType {
	ext = strings.TrimPrefix(strings.ToUpper(ext), ".")
	for ft, info := range fileTypeInfo {
		if ext == info[0] {
			return ft
		}
	}
	return FileTypeBinary
}

// MaxFilenameLength is the fixed catalog name field width
const MaxFilenameLength = 30

// encodeFilename produces the 30-byte catalog name field: upper-cased,
// space-padded, every byte with the high bit set per the DOS 3.3
// convention. Names longer than 30 characters are silently truncated,
// matching DOS behavior.
func encodeFilename(name string) [MaxFilenameLength]byte {
	var out [MaxFilenameLength]byte
	for i := range out {
		out[i] = 0xA0 // high-bit space
	}
	name = strings.ToUpper(name)
	for i := 0; i < len(name) && i < MaxFilenameLength; i++ {
		b := name[i]
		if b < 32 || b > 127 {
			b = ' '
		}
		out[i] = b | 0x80
	}
	return out
}

// canonicalName returns a name as it will read back from the catalog:
// upper-cased, truncated to the field width, trailing padding trimmed.
// Name comparisons must happen in this form, or two names sharing a
// 30-character prefix would slip past duplicate detection.
func canonicalName(name string) string {
	field := encodeFilename(name)
	return decodeFilename(field[:])
}

// decodeFilename strips the high bits and trailing padding from a
// catalog name field
func decodeFilename(field []byte) string {
	var sb strings.Builder
	for _, b := range field {
		sb.WriteByte(b & 0x7F)
	}
	return strings.TrimRight(sb.String(), " ")
}
