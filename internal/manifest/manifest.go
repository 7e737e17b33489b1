package manifest

import (
	"github.com/fulmenhq/tonegen/pkg/logger"
)

// Options combines discovery and naming settings for Build.
type Options struct {
	Discover DiscoverOptions
	Naming   Naming
}

// Manifest is the ordered set of asset records for one generation run.
// Ordinals are 0..Len()-1 in sorted name order.
type Manifest struct {
	Dir     string
	records []Record
}

// Build scans dir and assigns identities to every discovered asset.
func Build(dir string, opts Options) (*Manifest, error) {
	entries, err := Discover(dir, opts.Discover)
	if err != nil {
		return nil, err
	}
	return FromEntries(dir, entries, opts.Naming)
}

// FromEntries builds a manifest from already-listed entries. Entries are
// sorted first, so input order never affects ordinals. Two names that map to
// the same symbol or the same enum label (labels are upper-cased, so "A.wav"
// and "a.wav" collide) fail with NameCollisionError.
func FromEntries(dir string, entries []Entry, naming Naming) (*Manifest, error) {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	SortEntries(sorted)

	m := &Manifest{
		Dir:     dir,
		records: make([]Record, 0, len(sorted)),
	}
	bySymbol := make(map[string]string, len(sorted))
	byLabel := make(map[string]string, len(sorted))

	for i, e := range sorted {
		rec := NewRecord(e.Name, e.Size, i, naming)
		if prev, dup := bySymbol[rec.Symbol]; dup {
			return nil, &NameCollisionError{Kind: "symbol", Symbol: rec.Symbol, First: prev, Second: e.Name}
		}
		if prev, dup := byLabel[rec.EnumLabel]; dup {
			return nil, &NameCollisionError{Kind: "enum label", Symbol: rec.EnumLabel, First: prev, Second: e.Name}
		}
		if !rec.ValidSymbol() {
			logger.Warn("Asset name does not form a valid C identifier",
				logger.String("name", e.Name), logger.String("symbol", rec.Symbol))
		}
		bySymbol[rec.Symbol] = e.Name
		byLabel[rec.EnumLabel] = e.Name
		m.records = append(m.records, rec)
	}

	return m, nil
}

// Len returns the number of assets.
func (m *Manifest) Len() int { return len(m.records) }

// Records returns a copy of the records in ordinal order.
func (m *Manifest) Records() []Record {
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out
}

// Names returns original file names in ordinal order.
func (m *Manifest) Names() []string {
	names := make([]string, len(m.records))
	for i, r := range m.records {
		names[i] = r.Name
	}
	return names
}

// TotalSize sums the byte sizes of all assets.
func (m *Manifest) TotalSize() int64 {
	var total int64
	for _, r := range m.records {
		total += r.Size
	}
	return total
}
