// file: pkg/diskimg/errors.go

package diskimg

import "errors"

var (
	ErrInvalidTrack    = errors.New("invalid track number")
	ErrInvalidSector   = errors.New("invalid sector number")
	ErrSectorOverflow  = errors.New("data does not fit in one sector")
	ErrDiskFull        = errors.New("disk is full")
	ErrCatalogFull     = errors.New("catalog is full")
	ErrEmptyFile       = errors.New("file has no content")
	ErrFileNotFound    = errors.New("file not found")
	ErrFileExists      = errors.New("file already exists")
	ErrInvalidFilename = errors.New("invalid filename")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileTooLarge    = errors.New("file too large")
	ErrNotBinaryFile   = errors.New("not a binary file")
	ErrCorruptImage    = errors.New("corrupt disk image")
)
