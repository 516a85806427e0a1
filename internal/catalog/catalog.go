package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/agnivade/levenshtein"

	"github.com/vango-dev/dropdown/internal/errors"
	"github.com/vango-dev/dropdown/pkg/dropdown"
)

// MaxSize caps how many bytes of a catalog are read.
const MaxSize = 1 << 20

// Catalog is a decoded option list plus an optional initial selection.
type Catalog struct {
	Current string            `json:"current,omitempty"`
	Options []dropdown.Option `json:"options"`
}

// Sample returns the catalog served when no source is configured.
func Sample() *Catalog {
	return &Catalog{
		Current: "apple",
		Options: []dropdown.Option{
			{Value: "apple", Label: "Apple"},
			{Value: "banana", Label: "Banana"},
			{Value: "cherry", Label: "Cherry"},
			{Value: "damson", Label: "Damson"},
		},
	}
}

// Decode reads and validates a catalog from r.
func Decode(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return nil, errors.New("E201").Wrap(err)
	}
	if len(data) > MaxSize {
		return nil, errors.New("E202").WithDetailf("catalog exceeds %d bytes", MaxSize)
	}
	return Parse(data)
}

// Parse decodes and validates a catalog.
func Parse(data []byte) (*Catalog, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("E202").WithDetail("catalog is empty")
	}

	var c Catalog
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &c.Options); err != nil {
			return nil, errors.New("E202").Wrap(err)
		}
	case '{':
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, errors.New("E202").Wrap(err)
		}
	default:
		return nil, errors.New("E202").
			WithDetail("catalog must be a JSON list or object").
			WithSuggestion(`Use [{"value": "a", "label": "A"}] or {"current": "a", "options": [...]}`)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects empty and duplicate option values. A current value that
// matches no option is allowed; the widget renders it as no selection.
func (c *Catalog) Validate() error {
	seen := make(map[string]int, len(c.Options))
	for i, o := range c.Options {
		if o.Value == "" {
			return errors.New("E202").WithDetailf("option %d has an empty value", i)
		}
		if j, dup := seen[o.Value]; dup {
			return errors.New("E203").
				WithDetailf("value %q appears at positions %d and %d", o.Value, j, i)
		}
		seen[o.Value] = i
	}
	return nil
}

// Values returns the option values in order.
func (c *Catalog) Values() []string {
	out := make([]string, len(c.Options))
	for i, o := range c.Options {
		out[i] = o.Value
	}
	return out
}

// Closest returns the option whose value is nearest to value by edit
// distance, if any lies within a third of value's length. Ties go to the
// earlier option.
func (c *Catalog) Closest(value string) (dropdown.Option, bool) {
	var (
		best  dropdown.Option
		found bool
		dist  = len(value)/3 + 1
	)
	for _, o := range c.Options {
		if d := levenshtein.ComputeDistance(value, o.Value); d < dist {
			best, dist, found = o, d, true
		}
	}
	return best, found
}

func (c *Catalog) String() string {
	return fmt.Sprintf("catalog(%d options, current=%q)", len(c.Options), c.Current)
}
