// Package l10n provides the key to string tables consumed while building
// compatibility tables.
//
// Tables are immutable: Merge returns a new table with caller overrides
// applied, so a render never changes the defaults seen by another render.
// Lookups never fail; a missing key resolves to the key itself.
package l10n
