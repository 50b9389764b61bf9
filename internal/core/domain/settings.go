package domain

import "runtime"

const (
	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600

	// ConfigFileName is the name of the optional configuration file.
	ConfigFileName = "tajima.yaml"
)

// Settings carries the tunables of the decode pipeline.
type Settings struct {
	// Workers bounds the number of concurrent decode workers.
	Workers int
	// SequentialThreshold is the record count below which decoding stays in
	// the calling goroutine.
	SequentialThreshold int
	// CacheCapacity bounds the pattern cache per shard; 0 means unbounded.
	CacheCapacity int
	// ContentDigest enables hashing file content into the cache identity.
	// When disabled, size and mtime alone decide cache validity.
	ContentDigest bool
}

// DefaultSettings returns the settings used when no config file is present.
func DefaultSettings() Settings {
	return Settings{
		Workers:             runtime.NumCPU(),
		SequentialThreshold: 30_000,
		CacheCapacity:       0,
		ContentDigest:       true,
	}
}
