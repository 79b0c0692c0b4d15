package query

import (
	_ "embed"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/millionaires/internal/model"
	"github.com/sells-group/millionaires/internal/textnorm"
)

//go:embed notable.yaml
var defaultNotableYAML []byte

// NotableList is the YAML document listing curated names as printed.
type NotableList struct {
	Names []string `yaml:"names"`
}

// Notable matches records against a curated set of names by normalized name.
type Notable struct {
	names []string
	norms map[string]bool
}

// NewNotable builds a matcher from printed names.
func NewNotable(names []string) *Notable {
	n := &Notable{names: append([]string(nil), names...), norms: make(map[string]bool, len(names))}
	for _, name := range names {
		if norm := textnorm.Normalize(name); norm != "" {
			n.norms[norm] = true
		}
	}
	return n
}

// DefaultNotable returns the built-in list.
func DefaultNotable() (*Notable, error) {
	return parseNotable(defaultNotableYAML)
}

// LoadNotable reads a YAML list from path; an empty path selects the built-in
// list.
func LoadNotable(path string) (*Notable, error) {
	if path == "" {
		return DefaultNotable()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "notable: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, eris.Wrapf(err, "notable: read %s", path)
	}
	return parseNotable(data)
}

func parseNotable(data []byte) (*Notable, error) {
	var list NotableList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, eris.Wrap(err, "notable: parse yaml")
	}
	if len(list.Names) == 0 {
		return nil, eris.New("notable: no names listed")
	}
	return NewNotable(list.Names), nil
}

// Len returns the number of distinct normalized names.
func (n *Notable) Len() int { return len(n.norms) }

// Names returns the printed names.
func (n *Notable) Names() []string { return append([]string(nil), n.names...) }

// Match reports whether the record's normalized name is in the set.
func (n *Notable) Match(p model.PersonRecord) bool {
	return n.norms[p.NameNorm]
}

// Select returns the notable records in their original order.
func (n *Notable) Select(records []model.PersonRecord) []model.PersonRecord {
	out := make([]model.PersonRecord, 0)
	for _, p := range records {
		if n.Match(p) {
			out = append(out, p)
		}
	}
	return out
}
