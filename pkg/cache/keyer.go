package cache

// Keyer builds cache keys for pipeline stages.
type Keyer interface {
	// MoleculeKey identifies a parse result.
	MoleculeKey(notation string, opts MoleculeKeyOpts) string
	// ArtifactKey identifies a rendered output of a parsed molecule.
	ArtifactKey(moleculeHash string, opts ArtifactKeyOpts) string
}

// MoleculeKeyOpts holds everything besides the notation that changes a parse.
type MoleculeKeyOpts struct {
	TableFingerprint        string `json:"table"`
	KeepWildcards           bool   `json:"keep_wildcards"`
	RingBondsConsumeValence bool   `json:"ring_bonds_consume_valence"`
	StrictValence           bool   `json:"strict_valence"`
}

// ArtifactKeyOpts holds everything that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format       string `json:"format"`
	Layout       string `json:"layout"`
	ShowHydrogen bool   `json:"show_hydrogen"`
	Detailed     bool   `json:"detailed"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// MoleculeKey returns "molecule:<sha256>".
func (DefaultKeyer) MoleculeKey(notation string, opts MoleculeKeyOpts) string {
	return hashKey("molecule", notation, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(moleculeHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", moleculeHash, opts)
}
