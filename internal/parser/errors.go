package parser

import "errors"

var (
	// ErrInvalidFooter means the archive trailer is missing or inconsistent with the file size.
	ErrInvalidFooter = errors.New("invalid DAT footer")
	// ErrInvalidDirectory means the directory tree is truncated or describes impossible entries.
	ErrInvalidDirectory = errors.New("invalid DAT directory")
	// ErrEntryNotFound means no entry matches the requested name.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrInvalidPattern means an include or exclude pattern could not be compiled.
	ErrInvalidPattern = errors.New("invalid selection pattern")
)
