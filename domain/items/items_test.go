package items

import (
	"strings"
	"testing"
)

const sampleCSV = `name,action,recycle_for,keep_for
Basic Electronics,RECYCLE,wires and circuits,
Gun Oil,keep,,weapon maintenance
Rusted Gear,SELL,,
Military Grade Duct Tape,KEEP,,crafting
,SELL,,
No Action,,,
`

func loadSample(t *testing.T) *Store {
	t.Helper()
	s := NewStore(nil)
	if err := s.LoadCSV(strings.NewReader(sampleCSV)); err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	return s
}

func TestLoadCSVSkipsIncompleteRows(t *testing.T) {
	s := loadSample(t)
	if got := s.Len(); got != 4 {
		t.Fatalf("expected 4 items, got %d", got)
	}
}

func TestLoadCSVNormalizesAction(t *testing.T) {
	s := loadSample(t)
	item, ok := s.Lookup("gun oil")
	if !ok {
		t.Fatal("expected hit")
	}
	if item.Action != "KEEP" {
		t.Fatalf("expected KEEP, got %q", item.Action)
	}
	if item.KeepFor != "weapon maintenance" {
		t.Fatalf("unexpected keep note %q", item.KeepFor)
	}
}

func TestLookupExactCaseInsensitive(t *testing.T) {
	s := loadSample(t)
	item, ok := s.Lookup("BASIC ELECTRONICS")
	if !ok || item.Name != "Basic Electronics" {
		t.Fatalf("expected Basic Electronics, got %+v ok=%v", item, ok)
	}
}

func TestLookupPartialLabel(t *testing.T) {
	s := loadSample(t)
	// Tooltip read dropped a word; the label is a fragment of the entry.
	item, ok := s.Lookup("DUCT TAPE")
	if !ok || item.Name != "Military Grade Duct Tape" {
		t.Fatalf("expected duct tape entry, got %+v ok=%v", item, ok)
	}
}

func TestLookupNoisyLabel(t *testing.T) {
	s := loadSample(t)
	// The read picked up stat text after the name; the entry is a fragment
	// of the label.
	item, ok := s.Lookup("RUSTED GEAR WEIGHT 2")
	if !ok || item.Name != "Rusted Gear" {
		t.Fatalf("expected Rusted Gear, got %+v ok=%v", item, ok)
	}
}

func TestLookupMiss(t *testing.T) {
	s := loadSample(t)
	if _, ok := s.Lookup("PLASMA CORE"); ok {
		t.Fatal("expected miss")
	}
	if _, ok := s.Lookup("  "); ok {
		t.Fatal("blank label must miss")
	}
}

func TestLoadCSVMissingColumns(t *testing.T) {
	s := NewStore(nil)
	if err := s.LoadCSV(strings.NewReader("name,notes\nGun Oil,x\n")); err == nil {
		t.Fatal("expected error for missing action column")
	}
}

func TestPut(t *testing.T) {
	s := NewStore(nil)
	s.Put(Item{Name: "Scrap Metal", Action: "RECYCLE"})
	if _, ok := s.Lookup("scrap metal"); !ok {
		t.Fatal("expected hit after Put")
	}
}
