// Package storage persists parsed molecules so the API can hand out stable
// ids.
//
// A [Record] is keyed by a random UUID and carries the content hash of the
// molecule's JSON form. Saving a molecule whose hash is already stored
// returns the existing record, so the same notation parsed with the same
// table and options always maps to one id.
//
// [MongoStore] is the production backend; [MemoryStore] serves single-process
// deployments and tests.
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/molgraph/pkg/cache"
	molio "github.com/matzehuels/molgraph/pkg/io"
	"github.com/matzehuels/molgraph/pkg/molecule"
	"github.com/matzehuels/molgraph/pkg/smiles"
)

// Store saves and retrieves molecule records.
type Store interface {
	// Save stores rec unless a record with the same hash exists, and returns
	// whichever record is now stored.
	Save(ctx context.Context, rec *Record) (*Record, error)
	// Get returns the record with id, or a NOT_FOUND error.
	Get(ctx context.Context, id string) (*Record, error)
	Close(ctx context.Context) error
}

// Record is one stored parse.
type Record struct {
	ID               string         `bson:"_id" json:"id"`
	Hash             string         `bson:"hash" json:"hash"`
	Notation         string         `bson:"notation" json:"notation"`
	Formula          string         `bson:"formula" json:"formula"`
	TableFingerprint string         `bson:"table" json:"table"`
	Options          smiles.Options `bson:"options" json:"options"`
	Document         molio.Document `bson:"molecule" json:"molecule"`
	CreatedAt        time.Time      `bson:"created_at" json:"created_at"`
}

// NewRecord builds a record for m with a fresh id. The hash covers the
// molecule document, the table fingerprint and the parser options.
func NewRecord(m *molecule.Molecule, tableFingerprint string, opts smiles.Options) (*Record, error) {
	data, err := molio.Marshal(m)
	if err != nil {
		return nil, err
	}
	key := cache.NewDefaultKeyer().MoleculeKey(string(data), cache.MoleculeKeyOpts{
		TableFingerprint:        tableFingerprint,
		KeepWildcards:           opts.KeepWildcards,
		RingBondsConsumeValence: opts.RingBondsConsumeValence,
		StrictValence:           opts.StrictValence,
	})
	return &Record{
		ID:               uuid.NewString(),
		Hash:             cache.Hash([]byte(key)),
		Notation:         m.Notation,
		Formula:          m.Formula(),
		TableFingerprint: tableFingerprint,
		Options:          opts,
		Document:         molio.ToDocument(m),
		CreatedAt:        time.Now().UTC(),
	}, nil
}

// Molecule rebuilds the stored molecule, including its adjacency.
func (r *Record) Molecule() (*molecule.Molecule, error) {
	return molio.FromDocument(r.Document)
}

// ValidID reports whether id has the shape of a record id.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
