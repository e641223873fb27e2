// Package items holds the knowledge base that maps recognized item labels to
// the action the player should take with them.
package items

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Item is one knowledge base entry.
type Item struct {
	Name       string
	Action     string
	RecycleFor string
	KeepFor    string
}

// Store is an in-memory item knowledge base. Lookups are safe for concurrent
// use with reloads.
type Store struct {
	mu     sync.RWMutex
	byName map[string]Item
	logger *slog.Logger
}

// NewStore returns an empty knowledge base.
func NewStore(logger *slog.Logger) *Store {
	return &Store{
		byName: make(map[string]Item),
		logger: logger,
	}
}

// Len reports the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byName)
}

// Put inserts or replaces an entry.
func (s *Store) Put(item Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byName[strings.ToUpper(strings.TrimSpace(item.Name))] = item
}

// Lookup resolves a recognized label to an entry. An exact case-insensitive
// match wins; otherwise the shortest entry whose name contains the label, or
// that the label contains, is used. That tolerates partial tooltip reads and
// trailing recognizer noise. The second return is false when nothing matches.
func (s *Store) Lookup(label string) (Item, bool) {
	key := strings.ToUpper(strings.TrimSpace(label))
	if key == "" {
		return Item{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if item, ok := s.byName[key]; ok {
		return item, true
	}

	var best Item
	found := false
	for name, item := range s.byName {
		if !strings.Contains(name, key) && !strings.Contains(key, name) {
			continue
		}
		if !found || len(item.Name) < len(best.Name) {
			best = item
			found = true
		}
	}
	return best, found
}

// LoadCSV replaces the store contents with rows from r. The header row names
// the columns; name and action are required per row, recycle_for and
// keep_for are optional notes. Rows missing a name or action are skipped.
func (s *Store) LoadCSV(r io.Reader) error {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := col["name"]; !ok {
		return fmt.Errorf("missing name column")
	}
	if _, ok := col["action"]; !ok {
		return fmt.Errorf("missing action column")
	}

	byName := make(map[string]Item)
	skipped := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read row: %w", err)
		}
		item := Item{
			Name:       field(record, col, "name"),
			Action:     strings.ToUpper(field(record, col, "action")),
			RecycleFor: field(record, col, "recycle_for"),
			KeepFor:    field(record, col, "keep_for"),
		}
		if item.Name == "" || item.Action == "" {
			skipped++
			continue
		}
		byName[strings.ToUpper(item.Name)] = item
	}

	s.mu.Lock()
	s.byName = byName
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Info("item knowledge base loaded",
			slog.Int("items", len(byName)),
			slog.Int("skipped", skipped),
		)
	}
	return nil
}

func field(record []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
