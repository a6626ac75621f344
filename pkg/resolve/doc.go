// Package resolve turns support statements into the display state of a table
// cell: its support class, label text, icons and history annotations.
//
// Every function is pure apart from the Legend passed in by the caller, which
// collects the icons and support classes a table used. Callers allocate one
// Legend per table.
package resolve
