package bcd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// VersionKind enumerates the shapes a version_added/version_removed value can
// take in the source data.
type VersionKind int

const (
	// VersionUnknown is a null or absent value.
	VersionUnknown VersionKind = iota
	// VersionNone is the literal false.
	VersionNone
	// VersionUnversioned is the literal true: supported (or removed) in an
	// unknown release.
	VersionUnversioned
	// VersionRelease carries a release label such as "25" or "≤37".
	VersionRelease
)

// Version is the tagged variant for version_added/version_removed.
type Version struct {
	kind  VersionKind
	label string
}

// Unknown returns the null/absent version.
func Unknown() Version { return Version{kind: VersionUnknown} }

// None returns the false version.
func None() Version { return Version{kind: VersionNone} }

// Unversioned returns the true version.
func Unversioned() Version { return Version{kind: VersionUnversioned} }

// Release returns a version with the supplied label.
func Release(label string) Version { return Version{kind: VersionRelease, label: label} }

// Kind reports which variant v holds.
func (v Version) Kind() VersionKind { return v.kind }

// Label returns the release label; it is empty for every other variant.
func (v Version) Label() string { return v.label }

// Truthy mirrors the truthiness of the raw value: true for Unversioned and
// Release, false for Unknown and None.
func (v Version) Truthy() bool {
	return v.kind == VersionUnversioned || v.kind == VersionRelease
}

// IsRelease reports whether v carries a release label.
func (v Version) IsRelease() bool { return v.kind == VersionRelease }

func (v Version) String() string {
	switch v.kind {
	case VersionNone:
		return "false"
	case VersionUnversioned:
		return "true"
	case VersionRelease:
		return v.label
	default:
		return "null"
	}
}

// UnmarshalJSON accepts null, booleans, and strings.
func (v *Version) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*v = Unknown()
	case bytes.Equal(trimmed, []byte("true")):
		*v = Unversioned()
	case bytes.Equal(trimmed, []byte("false")):
		*v = None()
	default:
		var label string
		if err := json.Unmarshal(trimmed, &label); err != nil {
			return fmt.Errorf("bcd: version must be null, a boolean, or a string, got %s", trimmed)
		}
		*v = Release(label)
	}
	return nil
}

// MarshalJSON writes the raw representation back out.
func (v Version) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case VersionNone:
		return []byte("false"), nil
	case VersionUnversioned:
		return []byte("true"), nil
	case VersionRelease:
		return json.Marshal(v.label)
	default:
		return []byte("null"), nil
	}
}

func decodeVersionNode(node *yaml.Node) (Version, error) {
	if node == nil || node.Tag == "!!null" {
		return Unknown(), nil
	}
	if node.Kind != yaml.ScalarNode {
		return Version{}, fmt.Errorf("bcd: line %d: version must be a scalar", node.Line)
	}
	switch node.Tag {
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return Version{}, fmt.Errorf("bcd: line %d: %w", node.Line, err)
		}
		if b {
			return Unversioned(), nil
		}
		return None(), nil
	case "!!str":
		return Release(node.Value), nil
	default:
		return Version{}, fmt.Errorf("bcd: line %d: version must be null, a boolean, or a string, got %s", node.Line, node.Tag)
	}
}
