package resolve

import "github.com/goliatone/go-compattable/pkg/bcd"

// Class is the support level shown by a cell.
type Class string

const (
	ClassYes     Class = "yes"
	ClassNo      Class = "no"
	ClassPartial Class = "partial"
	ClassUnknown Class = "unknown"
)

// Classify computes the support class of a runtime entry. A nil entry means
// the data has nothing for the runtime and is unknown.
func Classify(support *bcd.Support) Class {
	if support == nil || support.Len() == 0 {
		return ClassUnknown
	}
	return ClassifyRecord(support.Head())
}

// ClassifyRecord computes the support class of one statement. Removal always
// wins over partial support.
func ClassifyRecord(record bcd.SupportRecord) Class {
	removed := record.VersionRemoved.Truthy()

	var class Class
	switch {
	case record.VersionAdded.Kind() == bcd.VersionUnknown:
		class = ClassUnknown
	case record.VersionAdded.Truthy() && removed:
		class = ClassNo
	case record.VersionAdded.Truthy():
		class = ClassYes
	default:
		class = ClassNo
	}

	if record.PartialImplementation && !removed {
		class = ClassPartial
	}
	return class
}
