package domain

// FileIdentity captures the fields used to decide whether a cached Pattern is
// still valid for the file on disk. A cache hit requires an exact match of
// every populated field; any mismatch forces a re-decode.
type FileIdentity struct {
	// Path is the absolute path of the pattern file.
	Path string
	// Size is the file size in bytes.
	Size int64
	// ModTime is the file's modification time in UnixNano.
	ModTime int64
	// Digest is the xxhash64 of the full file content. Zero when content
	// digests are disabled, in which case size and mtime alone decide
	// validity.
	Digest uint64
}

// Matches reports whether two identities refer to the same file content.
// Digests are only compared when both sides carry one, so an identity
// captured with digests disabled still matches against one that has them.
func (id FileIdentity) Matches(other FileIdentity) bool {
	if id.Path != other.Path || id.Size != other.Size || id.ModTime != other.ModTime {
		return false
	}
	if id.Digest != 0 && other.Digest != 0 && id.Digest != other.Digest {
		return false
	}
	return true
}
