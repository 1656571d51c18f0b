package translate

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Entry is one key/value pair of a Dictionary.
type Entry struct {
	Key   string
	Value string
}

// Dictionary is a string map that remembers declaration order.
// It decodes from a YAML mapping; duplicate keys are rejected.
type Dictionary struct {
	entries []Entry
	index   map[string]int
}

// NewDictionary builds a dictionary from entries in order.
// A repeated key keeps its first position and takes the last value.
func NewDictionary(entries ...Entry) Dictionary {
	var d Dictionary
	for _, e := range entries {
		d.set(e.Key, e.Value)
	}
	return d
}

func (d *Dictionary) set(key, value string) {
	if d.index == nil {
		d.index = make(map[string]int)
	}
	if i, ok := d.index[key]; ok {
		d.entries[i].Value = value
		return
	}
	d.index[key] = len(d.entries)
	d.entries = append(d.entries, Entry{Key: key, Value: value})
}

// UnmarshalYAML implements yaml.Unmarshaler, keeping mapping order.
func (d *Dictionary) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}

	*d = Dictionary{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: keys and values must be scalars", k.Line)
		}
		if _, dup := d.index[k.Value]; dup {
			return fmt.Errorf("line %d: duplicate key %q", k.Line, k.Value)
		}
		value := v.Value
		if v.Tag == "!!null" {
			value = ""
		}
		d.set(k.Value, value)
	}
	return nil
}

// Lookup returns the value stored for key.
func (d Dictionary) Lookup(key string) (string, bool) {
	i, ok := d.index[key]
	if !ok {
		return "", false
	}
	return d.entries[i].Value, true
}

// Entries returns the pairs in declaration order.
func (d Dictionary) Entries() []Entry {
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Len returns the number of entries.
func (d Dictionary) Len() int {
	return len(d.entries)
}

// longestFirst orders entries for substring matching: longer keys first,
// declaration order among keys of the same length.
func longestFirst(dicts ...Dictionary) []Entry {
	var out []Entry
	for _, d := range dicts {
		out = append(out, d.entries...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return utf8.RuneCountInString(out[i].Key) > utf8.RuneCountInString(out[j].Key)
	})
	return out
}
