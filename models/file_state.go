package models

import "time"

// FileState describes one regular file of a replica at scan time.
type FileState struct {
	// Path is the slash-separated path relative to the replica root.
	Path string `json:"path"`

	// Hash is the hex-encoded SHA-256 of the file contents.
	Hash string `json:"hash"`

	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// SameContent reports whether a and b describe the same content. A nil state
// means the file is absent; two absent states are equal.
func SameContent(a, b *FileState) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Hash == b.Hash && a.Size == b.Size
}
