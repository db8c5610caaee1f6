package book

import (
	"fmt"
	"sort"
	"strings"

	"bookbot/internal/domain"
)

// ValueSet is an insertion-ordered set of strings. Each entry is keyed by
// its own value, matching how multi-value fields (phone numbers, tags)
// behave: no duplicates, stable order.
type ValueSet struct {
	order []string
	seen  map[string]bool
}

func NewValueSet() *ValueSet {
	return &ValueSet{seen: make(map[string]bool)}
}

func (s *ValueSet) Add(value string) {
	if s.seen[value] {
		return
	}
	s.seen[value] = true
	s.order = append(s.order, value)
}

func (s *ValueSet) Remove(value string) error {
	if !s.seen[value] {
		return fmt.Errorf("%w: %q", domain.ErrRecordNotFound, value)
	}
	delete(s.seen, value)
	for i, v := range s.order {
		if v == value {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *ValueSet) Replace(oldValue, newValue string) error {
	if err := s.Remove(oldValue); err != nil {
		return err
	}
	s.Add(newValue)
	return nil
}

func (s *ValueSet) Values() []string {
	return append([]string(nil), s.order...)
}

func (s *ValueSet) Len() int {
	return len(s.order)
}

// Record is one entry of a book: scalar fields plus multi-value fields,
// both validated against the book's schema.
type Record struct {
	schema *Schema
	fields map[string]string
	multi  map[string]*ValueSet
}

// NewRecord builds a validated record from raw field values. Unsupported
// fields and missing required fields are rejected; per-field validators
// run on every value.
func NewRecord(schema *Schema, values map[string]string) (*Record, error) {
	var unsupported []string
	for field := range values {
		if !schema.HasField(field) {
			unsupported = append(unsupported, field)
		}
	}
	if len(unsupported) > 0 {
		sort.Strings(unsupported)
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedField, strings.Join(unsupported, ", "))
	}

	var missing []string
	for _, field := range schema.Required {
		if values[field] == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required field(s): %s", domain.ErrInvalidDocument, strings.Join(missing, ", "))
	}

	rec := &Record{
		schema: schema,
		fields: make(map[string]string),
		multi:  make(map[string]*ValueSet),
	}
	for _, field := range schema.MultiValue {
		if value, ok := values[field]; ok && value != "" {
			validated, err := schema.Validate(field, value)
			if err != nil {
				return nil, err
			}
			set := NewValueSet()
			set.Add(validated)
			rec.multi[field] = set
		}
	}
	for _, field := range schema.Fields {
		if value, ok := values[field]; ok && value != "" {
			validated, err := schema.Validate(field, value)
			if err != nil {
				return nil, err
			}
			rec.fields[field] = validated
		}
	}
	return rec, nil
}

// Key derives the record's stable identity from its duplicate-check
// fields.
func (r *Record) Key() string {
	return keyFor(r.schema, r.fields)
}

func keyFor(schema *Schema, fields map[string]string) string {
	checked := schema.duplicateCheckFields()
	parts := make([]string, 0, len(checked))
	for _, field := range checked {
		value := fields[field]
		if value == "" {
			value = "<missing>"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", field, value))
	}
	return strings.Join(parts, ", ")
}

// FieldValues returns a copy of the scalar fields.
func (r *Record) FieldValues() map[string]string {
	fields := make(map[string]string, len(r.fields))
	for field, value := range r.fields {
		fields[field] = value
	}
	return fields
}

// MultiValues returns each multi-value field's entries in insertion order.
func (r *Record) MultiValues() map[string][]string {
	multi := make(map[string][]string, len(r.multi))
	for field, set := range r.multi {
		multi[field] = set.Values()
	}
	return multi
}

// Field returns one scalar field value.
func (r *Record) Field(name string) string {
	return r.fields[name]
}

// SetField validates and sets one scalar field value.
func (r *Record) SetField(name, value string) error {
	if !r.schema.isScalarField(name) {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedField, name)
	}
	validated, err := r.schema.Validate(name, value)
	if err != nil {
		return err
	}
	r.fields[name] = validated
	return nil
}

func (r *Record) multiValueSet(field string) (*ValueSet, error) {
	if !r.schema.isMultiValueField(field) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedField, field)
	}
	set, ok := r.multi[field]
	if !ok {
		set = NewValueSet()
		r.multi[field] = set
	}
	return set, nil
}

// AddMultiValue validates and appends a value to a multi-value field.
func (r *Record) AddMultiValue(field, value string) error {
	set, err := r.multiValueSet(field)
	if err != nil {
		return err
	}
	validated, err := r.schema.Validate(field, value)
	if err != nil {
		return err
	}
	set.Add(validated)
	return nil
}

// ReplaceMultiValue swaps one entry of a multi-value field for a new,
// validated value.
func (r *Record) ReplaceMultiValue(field, oldValue, newValue string) error {
	set, err := r.multiValueSet(field)
	if err != nil {
		return err
	}
	validated, err := r.schema.Validate(field, newValue)
	if err != nil {
		return err
	}
	return set.Replace(oldValue, validated)
}

// RemoveMultiValue deletes one entry of a multi-value field.
func (r *Record) RemoveMultiValue(field, value string) error {
	set, err := r.multiValueSet(field)
	if err != nil {
		return err
	}
	return set.Remove(value)
}

func (r *Record) String() string {
	var lines []string
	lines = append(lines, r.schema.Name+":")
	for _, field := range r.schema.Fields {
		if value, ok := r.fields[field]; ok {
			lines = append(lines, fmt.Sprintf("  %s: %s", field, value))
		}
	}
	for _, field := range r.schema.MultiValue {
		set, ok := r.multi[field]
		if !ok || set.Len() == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s:", field))
		for _, value := range set.Values() {
			lines = append(lines, "    "+value)
		}
	}
	return strings.Join(lines, "\n")
}
