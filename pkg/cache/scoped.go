package cache

// ScopedKeyer wraps a Keyer with a prefix so that independent datasets
// get isolated cache namespaces. Useful when the same store serves
// several interaction corpus releases or upstream API versions.
//
// Example usage:
//
//	// Keys scoped to a specific corpus release
//	corpusKeyer := NewScopedKeyer(NewDefaultKeyer(), "string:v12:")
//
//	// Unscoped keys
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DiseaseKey generates a prefixed key for disease target list caching.
func (k *ScopedKeyer) DiseaseKey(diseaseID string, opts DiseaseKeyOpts) string {
	return k.prefix + k.inner.DiseaseKey(diseaseID, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(graphHash, opts)
}
