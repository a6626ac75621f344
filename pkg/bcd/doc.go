// Package bcd models browser-compat-data documents: an ordered tree of feature
// nodes where any node may carry a "__compat" entry describing per-runtime
// support statements.
//
// Decoding preserves the key order of the source document because table rows
// are emitted in that order. JSON documents are decoded from the token stream
// and YAML documents from yaml.v3 nodes; both produce the same Node tree.
//
// The union-typed fields of the raw format are represented as explicit
// variants: Version covers null/false/true/"label" and Support covers a single
// statement or an ordered list of statements.
package bcd
