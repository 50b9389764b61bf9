package config

// File represents the structure of the optional tajima.yaml configuration
// file. Zero fields fall back to defaults, so a partial file is fine.
type File struct {
	Version string    `yaml:"version"`
	Decode  DecodeDTO `yaml:"decode"`
	Cache   CacheDTO  `yaml:"cache"`
}

// DecodeDTO configures the stitch decode pipeline.
type DecodeDTO struct {
	Workers             int `yaml:"workers"`
	SequentialThreshold int `yaml:"sequentialThreshold"`
}

// CacheDTO configures the pattern cache.
type CacheDTO struct {
	Capacity      int   `yaml:"capacity"`
	ContentDigest *bool `yaml:"contentDigest"`
}
