package storage

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/molgraph/pkg/elements"
	"github.com/matzehuels/molgraph/pkg/errors"
	"github.com/matzehuels/molgraph/pkg/molecule"
	"github.com/matzehuels/molgraph/pkg/smiles"
)

func parse(t *testing.T, notation string, opts smiles.Options) *molecule.Molecule {
	t.Helper()
	m, err := smiles.Parse(notation, elements.Default(), opts)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestNewRecord(t *testing.T) {
	m := parse(t, "CCO", smiles.Options{})
	rec, err := NewRecord(m, "fp", smiles.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !ValidID(rec.ID) {
		t.Errorf("ID %q is not a uuid", rec.ID)
	}
	if rec.Formula != "C2H6O" || rec.Notation != "CCO" {
		t.Errorf("record = %+v", rec)
	}
	if len(rec.Hash) != 64 {
		t.Errorf("Hash = %q", rec.Hash)
	}

	back, err := rec.Molecule()
	if err != nil {
		t.Fatal(err)
	}
	if back.Formula() != m.Formula() || len(back.Edges) != len(m.Edges) {
		t.Errorf("rebuilt molecule differs")
	}

	again, _ := NewRecord(m, "fp", smiles.Options{})
	if again.ID == rec.ID {
		t.Error("ids should be unique")
	}
	if again.Hash != rec.Hash {
		t.Error("same molecule should hash the same")
	}
	other, _ := NewRecord(m, "fp2", smiles.Options{})
	if other.Hash == rec.Hash {
		t.Error("table fingerprint should change the hash")
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	m := parse(t, "C=C", smiles.Options{})
	rec, _ := NewRecord(m, "fp", smiles.Options{})

	saved, err := s.Save(ctx, rec)
	if err != nil {
		t.Fatal(err)
	}
	if saved.ID != rec.ID {
		t.Errorf("first save should keep the id")
	}

	dup, _ := NewRecord(m, "fp", smiles.Options{})
	saved, err = s.Save(ctx, dup)
	if err != nil {
		t.Fatal(err)
	}
	if saved.ID != rec.ID {
		t.Errorf("duplicate hash should return the existing record, got %s", saved.ID)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}

	got, err := s.Get(ctx, rec.ID)
	if err != nil || got.Formula != "C2H4" {
		t.Errorf("Get = %+v, %v", got, err)
	}

	if _, err := s.Get(ctx, "00000000-0000-0000-0000-000000000000"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing id: %v", err)
	}
}

func TestValidID(t *testing.T) {
	if ValidID("not-a-uuid") {
		t.Error("ValidID should reject garbage")
	}
	if !ValidID("6ba7b810-9dad-11d1-80b4-00c04fd430c8") {
		t.Error("ValidID should accept a uuid")
	}
}

func TestNewMongoStoreValidation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := NewMongoStore(ctx, MongoOptions{}); !errors.Is(err, errors.ErrCodeConfigLoad) {
		t.Errorf("empty uri: %v", err)
	}
	if _, err := NewMongoStore(ctx, MongoOptions{URI: "mongodb://localhost"}); !errors.Is(err, errors.ErrCodeConfigLoad) {
		t.Errorf("missing database: %v", err)
	}
}
