package model

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kassa/pkg/domain/model/config"
	"github.com/secmon-lab/kassa/pkg/domain/types"
)

// FieldEntry is the current value of one form field and whether it is
// shown with an error
type FieldEntry struct {
	Value string `json:"value"`
	Error bool   `json:"error"`
}

// Form is the set of all field entries of a checkout. A Form is never
// modified in place: SetField and ReplaceAll return a new Form and leave
// the receiver untouched.
type Form struct {
	schema  *config.FieldSchema
	entries map[types.FieldID]FieldEntry
}

// NewForm creates a form with every field of schema empty and error-free
func NewForm(schema *config.FieldSchema) Form {
	entries := make(map[types.FieldID]FieldEntry, len(schema.Fields))
	for _, f := range schema.Fields {
		entries[f.ID] = FieldEntry{}
	}
	return Form{schema: schema, entries: entries}
}

// Schema returns the field schema of the form
func (f Form) Schema() *config.FieldSchema {
	return f.schema
}

// Get returns the entry of the field
func (f Form) Get(id types.FieldID) (FieldEntry, bool) {
	e, ok := f.entries[id]
	return e, ok
}

// Value returns the raw value of the field, or "" if unknown
func (f Form) Value(id types.FieldID) string {
	return f.entries[id].Value
}

// Entries returns a copy of all entries
func (f Form) Entries() map[types.FieldID]FieldEntry {
	copied := make(map[types.FieldID]FieldEntry, len(f.entries))
	for id, e := range f.entries {
		copied[id] = e
	}
	return copied
}

// HasErrors reports whether any field is flagged
func (f Form) HasErrors() bool {
	for _, e := range f.entries {
		if e.Error {
			return true
		}
	}
	return false
}

// SetField writes raw into the field and validates it against the field's
// kind. Only the error flag of that field is recomputed.
func (f Form) SetField(id types.FieldID, raw string) (Form, error) {
	spec, ok := f.schema.Lookup(id)
	if !ok {
		return f, goerr.Wrap(ErrUnknownField, "cannot set field", goerr.V(FieldIDKey, id))
	}

	entries := f.Entries()
	entries[id] = FieldEntry{
		Value: raw,
		Error: hasFormatError(raw, spec.Kind),
	}
	return f.withEntries(entries), nil
}

// ReplaceAll overwrites the whole form. Fields missing from entries are
// reset to empty.
func (f Form) ReplaceAll(entries map[types.FieldID]FieldEntry) (Form, error) {
	next := make(map[types.FieldID]FieldEntry, len(f.schema.Fields))
	for _, spec := range f.schema.Fields {
		next[spec.ID] = FieldEntry{}
	}
	for id, e := range entries {
		if _, ok := next[id]; !ok {
			return f, goerr.Wrap(ErrUnknownField, "cannot replace form", goerr.V(FieldIDKey, id))
		}
		next[id] = e
	}
	return f.withEntries(next), nil
}

func (f Form) withEntries(entries map[types.FieldID]FieldEntry) Form {
	return Form{schema: f.schema, entries: entries}
}

// MarshalJSON encodes the form as a map of field ID to entry
func (f Form) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.entries)
}
