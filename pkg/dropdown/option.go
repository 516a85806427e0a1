package dropdown

import "iter"

// Option is one selectable item.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Lookup returns the first option whose value equals value. An empty value
// never matches.
func Lookup(options []Option, value string) (Option, bool) {
	if value == "" {
		return Option{}, false
	}
	for _, o := range options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

// Others yields every option whose value differs from current, in order.
// The sequence reads options lazily and can be ranged over more than once.
func Others(options []Option, current string) iter.Seq[Option] {
	return func(yield func(Option) bool) {
		for _, o := range options {
			if o.Value == current {
				continue
			}
			if !yield(o) {
				return
			}
		}
	}
}
