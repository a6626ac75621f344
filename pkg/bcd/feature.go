package bcd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// CompatKey is the reserved key holding a node's own compat entry.
const CompatKey = "__compat"

// Feature is the payload stored under a node's "__compat" key.
type Feature struct {
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	MDNURL      string             `json:"mdn_url,omitempty" yaml:"mdn_url,omitempty"`
	Status      *Status            `json:"status,omitempty" yaml:"status,omitempty"`
	Support     map[string]Support `json:"support,omitempty" yaml:"support,omitempty"`
}

// Status carries the standardisation flags of a feature. StandardTrack is nil
// when the source omits the key.
type Status struct {
	Experimental  bool  `json:"experimental" yaml:"experimental"`
	StandardTrack *bool `json:"standard_track,omitempty" yaml:"standard_track,omitempty"`
	Deprecated    bool  `json:"deprecated" yaml:"deprecated"`
}

// NonStandard reports whether the source explicitly sets standard_track to
// false. An absent key says nothing about standardisation.
func (s *Status) NonStandard() bool {
	return s != nil && s.StandardTrack != nil && !*s.StandardTrack
}

// SupportFor returns the support entry for runtime, or nil when the data has
// no statement for it.
func (f *Feature) SupportFor(runtime string) *Support {
	if f == nil || f.Support == nil {
		return nil
	}
	support, ok := f.Support[runtime]
	if !ok {
		return nil
	}
	return &support
}

// SupportRecord is a single support statement.
type SupportRecord struct {
	VersionAdded          Version `json:"version_added" yaml:"version_added"`
	VersionRemoved        Version `json:"version_removed,omitempty" yaml:"version_removed,omitempty"`
	PartialImplementation bool    `json:"partial_implementation,omitempty" yaml:"partial_implementation,omitempty"`
	Prefix                string  `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	AlternativeName       string  `json:"alternative_name,omitempty" yaml:"alternative_name,omitempty"`
	Notes                 Notes   `json:"notes,omitempty" yaml:"notes,omitempty"`
	Flags                 []Flag  `json:"flags,omitempty" yaml:"flags,omitempty"`
}

// HasAnnotations reports whether the record carries anything that is shown in
// the history panel (prefix, notes, alternative name or flags).
func (r SupportRecord) HasAnnotations() bool {
	return r.Prefix != "" || r.Notes.Present() || r.AlternativeName != "" || r.Flags != nil
}

// Flag describes a preference or build flag that gates a feature.
type Flag struct {
	Type       string `json:"type" yaml:"type"`
	Name       string `json:"name" yaml:"name"`
	ValueToSet string `json:"value_to_set,omitempty" yaml:"value_to_set,omitempty"`
}

// Notes is the ordered list of free-form notes attached to a record. The raw
// format allows a single string or a list of strings; any other shape is kept
// as malformed so validation can report it against the cell being resolved.
type Notes struct {
	items     []string
	present   bool
	malformed string
}

// NewNotes builds a Notes value from the supplied strings.
func NewNotes(items ...string) Notes {
	return Notes{items: append([]string(nil), items...), present: true}
}

// Items returns a copy of the note strings.
func (n Notes) Items() []string {
	return append([]string(nil), n.items...)
}

// Present reports whether the record declared notes at all.
func (n Notes) Present() bool { return n.present }

// Malformed returns a description of an unsupported notes shape, or "".
func (n Notes) Malformed() string { return n.malformed }

// UnmarshalJSON accepts a string or a list of strings.
func (n *Notes) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*n = Notes{}
		return nil
	}

	var single string
	if err := json.Unmarshal(trimmed, &single); err == nil {
		*n = NewNotes(single)
		return nil
	}

	var list []string
	if err := json.Unmarshal(trimmed, &list); err == nil {
		*n = NewNotes(list...)
		return nil
	}

	*n = Notes{present: true, malformed: fmt.Sprintf("notes must be a string or a list of strings, got %s", jsonKind(trimmed))}
	return nil
}

// MarshalJSON writes a single note as a string and several as a list.
func (n Notes) MarshalJSON() ([]byte, error) {
	switch {
	case !n.present:
		return []byte("null"), nil
	case len(n.items) == 1:
		return json.Marshal(n.items[0])
	default:
		return json.Marshal(n.items)
	}
}

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (n *Notes) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*n = Notes{}
			return nil
		}
		*n = NewNotes(node.Value)
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(node.Content))
		for _, child := range node.Content {
			if child.Kind != yaml.ScalarNode || child.Tag != "!!str" {
				*n = Notes{present: true, malformed: fmt.Sprintf("notes entry at line %d is not a string", child.Line)}
				return nil
			}
			items = append(items, child.Value)
		}
		*n = NewNotes(items...)
		return nil
	default:
		*n = Notes{present: true, malformed: fmt.Sprintf("notes at line %d must be a string or a list of strings", node.Line)}
		return nil
	}
}

// Support is the tagged variant {single statement | ordered statements}
// stored per runtime.
type Support struct {
	records  []SupportRecord
	sequence bool
}

// Single wraps one statement.
func Single(record SupportRecord) Support {
	return Support{records: []SupportRecord{record}}
}

// Sequence wraps an ordered list of statements; the first is authoritative.
func Sequence(records ...SupportRecord) Support {
	return Support{records: append([]SupportRecord(nil), records...), sequence: true}
}

// IsSequence reports whether the source declared a list of statements.
func (s Support) IsSequence() bool { return s.sequence }

// Len returns the number of statements.
func (s Support) Len() int { return len(s.records) }

// Head returns the authoritative statement.
func (s Support) Head() SupportRecord {
	if len(s.records) == 0 {
		return SupportRecord{}
	}
	return s.records[0]
}

// History returns every statement in source order.
func (s Support) History() []SupportRecord {
	return append([]SupportRecord(nil), s.records...)
}

var errEmptySupport = errors.New("bcd: support statement list is empty")

// UnmarshalJSON accepts an object or a non-empty array of objects.
func (s *Support) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []SupportRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return err
		}
		if len(records) == 0 {
			return errEmptySupport
		}
		*s = Sequence(records...)
		return nil
	}

	var record SupportRecord
	if err := json.Unmarshal(trimmed, &record); err != nil {
		return err
	}
	*s = Single(record)
	return nil
}

// MarshalJSON mirrors the source shape.
func (s Support) MarshalJSON() ([]byte, error) {
	if s.sequence {
		return json.Marshal(s.records)
	}
	return json.Marshal(s.Head())
}

// UnmarshalYAML accepts a mapping or a non-empty sequence of mappings.
func (s *Support) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		records := make([]SupportRecord, 0, len(node.Content))
		for _, child := range node.Content {
			record, err := decodeRecordNode(child)
			if err != nil {
				return err
			}
			records = append(records, record)
		}
		if len(records) == 0 {
			return errEmptySupport
		}
		*s = Sequence(records...)
		return nil
	}

	record, err := decodeRecordNode(node)
	if err != nil {
		return err
	}
	*s = Single(record)
	return nil
}

// recordFields mirrors SupportRecord for YAML decoding; versions are decoded
// separately because yaml.v3 cannot tell an absent key from an explicit null.
type recordFields struct {
	PartialImplementation bool   `yaml:"partial_implementation"`
	Prefix                string `yaml:"prefix"`
	AlternativeName       string `yaml:"alternative_name"`
	Notes                 Notes  `yaml:"notes"`
	Flags                 []Flag `yaml:"flags"`
}

func decodeRecordNode(node *yaml.Node) (SupportRecord, error) {
	if node.Kind != yaml.MappingNode {
		return SupportRecord{}, fmt.Errorf("bcd: line %d: support statement must be a mapping", node.Line)
	}

	var fields recordFields
	if err := node.Decode(&fields); err != nil {
		return SupportRecord{}, fmt.Errorf("bcd: line %d: %w", node.Line, err)
	}

	record := SupportRecord{
		PartialImplementation: fields.PartialImplementation,
		Prefix:                fields.Prefix,
		AlternativeName:       fields.AlternativeName,
		Notes:                 fields.Notes,
		Flags:                 fields.Flags,
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		var err error
		switch key.Value {
		case "version_added":
			record.VersionAdded, err = decodeVersionNode(value)
		case "version_removed":
			record.VersionRemoved, err = decodeVersionNode(value)
		case "flags":
			if value.Kind == yaml.SequenceNode && len(value.Content) == 0 {
				record.Flags = []Flag{}
			}
		}
		if err != nil {
			return SupportRecord{}, err
		}
	}
	return record, nil
}

func jsonKind(raw []byte) string {
	if len(raw) == 0 {
		return "empty value"
	}
	switch raw[0] {
	case '{':
		return "an object"
	case '[':
		return "a list with non-string entries"
	case 't', 'f':
		return "a boolean"
	case '"':
		return "a string"
	default:
		return "a number"
	}
}
