// Package table assembles collected rows into the plain data context handed to
// renderers: header columns, resolved cells, feature labels and the legend.
package table
