package resolve

// Legend tags.
const (
	LegendSupportYes     = "support_yes"
	LegendSupportPartial = "support_partial"
	LegendSupportNo      = "support_no"
	LegendSupportUnknown = "support_unknown"
)

// LegendOrder is the order legend entries are displayed in, regardless of the
// order they were encountered.
var LegendOrder = []string{
	LegendSupportYes,
	LegendSupportPartial,
	LegendSupportNo,
	LegendSupportUnknown,
	IconExperimental,
	IconNonStandard,
	IconDeprecated,
	IconFootnote,
	IconDisabled,
	IconAltName,
	IconPrefix,
}

// Legend collects the tags a table used. The zero value is ready to use and a
// nil Legend discards tags. It is not safe for concurrent use and belongs to
// a single render.
type Legend struct {
	seen map[string]struct{}
}

// NewLegend returns an empty legend.
func NewLegend() *Legend {
	return &Legend{seen: make(map[string]struct{})}
}

// Add records tag. Tags outside LegendOrder are ignored.
func (l *Legend) Add(tag string) {
	if l == nil || !isLegendTag(tag) {
		return
	}
	if l.seen == nil {
		l.seen = make(map[string]struct{})
	}
	l.seen[tag] = struct{}{}
}

// AddSupport records the support_<class> tag.
func (l *Legend) AddSupport(class Class) {
	l.Add("support_" + string(class))
}

// Has reports whether tag was recorded.
func (l *Legend) Has(tag string) bool {
	if l == nil {
		return false
	}
	_, ok := l.seen[tag]
	return ok
}

// Len returns the number of recorded tags.
func (l *Legend) Len() int {
	if l == nil {
		return 0
	}
	return len(l.seen)
}

// Items returns the recorded tags in LegendOrder.
func (l *Legend) Items() []string {
	if l == nil {
		return nil
	}
	out := make([]string, 0, len(l.seen))
	for _, tag := range LegendOrder {
		if l.Has(tag) {
			out = append(out, tag)
		}
	}
	return out
}

// SupportClass returns the class of a support_* tag.
func SupportClass(tag string) (Class, bool) {
	switch tag {
	case LegendSupportYes:
		return ClassYes, true
	case LegendSupportPartial:
		return ClassPartial, true
	case LegendSupportNo:
		return ClassNo, true
	case LegendSupportUnknown:
		return ClassUnknown, true
	}
	return "", false
}

func isLegendTag(tag string) bool {
	for _, known := range LegendOrder {
		if known == tag {
			return true
		}
	}
	return false
}
