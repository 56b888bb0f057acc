package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one Redis instance without seeing each other's entries.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// MoleculeKey generates a prefixed parse key.
func (k *ScopedKeyer) MoleculeKey(notation string, opts MoleculeKeyOpts) string {
	return k.prefix + k.inner.MoleculeKey(notation, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(moleculeHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(moleculeHash, opts)
}
