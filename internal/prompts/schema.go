package prompts

import (
	"fmt"
	"promptscrape/internal/telemetry"
	"sort"
	"strings"
)

// Schema resolves block headings to fields.
type Schema struct {
	labels map[string]Field
	tel    telemetry.API
}

// NewSchema returns a schema that recognizes the label of every field.
func NewSchema(tel telemetry.API) *Schema {
	s := &Schema{
		labels: make(map[string]Field, fieldCount),
		tel:    tel,
	}
	for _, f := range Fields() {
		s.labels[f.Label()] = f
	}
	return s
}

// AddAlias makes `label` fill `column`, which is either a field key or a
// field label. Aliases can only point at columns that are exported.
func (s *Schema) AddAlias(label, column string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return fmt.Errorf("empty alias for column %q", column)
	}
	field, err := ParseField(column)
	if err != nil {
		return fmt.Errorf("alias %q: %w", label, err)
	}
	if existing, ok := s.labels[label]; ok && existing != field {
		return fmt.Errorf("alias %q already maps to %s", label, existing)
	}
	s.labels[label] = field
	return nil
}

// AddAliases registers every label -> column pair.
func (s *Schema) AddAliases(aliases map[string]string) error {
	for label, column := range aliases {
		err := s.AddAlias(label, column)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Schema) Lookup(label string) (Field, bool) {
	f, ok := s.labels[label]
	return f, ok
}

// knownLabels lists the field labels in column order followed by the
// aliases in sorted order.
func (s *Schema) knownLabels() []string {
	out := make([]string, 0, len(s.labels))
	var aliases []string
	for _, f := range Fields() {
		out = append(out, f.Label())
	}
	for label, f := range s.labels {
		if label != f.Label() {
			aliases = append(aliases, label)
		}
	}
	sort.Strings(aliases)
	return append(out, aliases...)
}
