package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was found; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A non-positive TTL stores the value
	// without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// Default TTLs per content class. Disease-target associations change on
// upstream release cycles measured in weeks; rendered artifacts are keyed
// by graph content hash and can live even longer.
const (
	TTLDisease  = 7 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
)

// Keyer generates cache keys for the different content types.
// Implementations must produce stable keys: identical inputs always
// map to the same key.
type Keyer interface {
	// DiseaseKey generates a key for a resolved disease target list.
	DiseaseKey(diseaseID string, opts DiseaseKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact derived from
	// a graph content hash.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// DiseaseKeyOpts captures the fetch parameters that affect a disease
// target list. Changing any of them must change the key.
type DiseaseKeyOpts struct {
	PageSize int `json:"page_size"`
}

// ArtifactKeyOpts captures the render parameters that affect an artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Mode   string `json:"mode"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DiseaseKey generates a key for disease target list caching.
// The options are hashed into the key so that parameter changes miss.
func (k *DefaultKeyer) DiseaseKey(diseaseID string, opts DiseaseKeyOpts) string {
	return hashKey("disease", diseaseID, opts)
}

// ArtifactKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
