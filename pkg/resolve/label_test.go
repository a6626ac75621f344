package resolve_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-compattable/pkg/bcd"
	"github.com/goliatone/go-compattable/pkg/l10n"
	"github.com/goliatone/go-compattable/pkg/resolve"
)

func TestCellLabel(t *testing.T) {
	strs := l10n.Default()

	tests := []struct {
		name    string
		added   bcd.Version
		removed bcd.Version
		partial bool
		want    resolve.Label
	}{
		{
			name:  "unknown",
			added: bcd.Unknown(),
			want:  resolve.Label{Class: resolve.ClassUnknown, Title: "Compatibility unknown; please update this.", Short: "?"},
		},
		{
			name:  "unversioned",
			added: bcd.Unversioned(),
			want:  resolve.Label{Class: resolve.ClassYes, Title: "Full support", Short: "Yes"},
		},
		{
			name:  "never",
			added: bcd.None(),
			want:  resolve.Label{Class: resolve.ClassNo, Title: "No support", Short: "No"},
		},
		{
			name:  "release",
			added: bcd.Release("25"),
			want:  resolve.Label{Class: resolve.ClassYes, Title: "Full support", Version: "25"},
		},
		{
			name:    "removed range",
			added:   bcd.Release("1"),
			removed: bcd.Release("22"),
			want:    resolve.Label{Class: resolve.ClassNo, Title: "No support", Version: "1 — 22"},
		},
		{
			name:    "removed unknown range",
			added:   bcd.Unversioned(),
			removed: bcd.Unversioned(),
			want:    resolve.Label{Class: resolve.ClassNo, Title: "No support", Version: "? — ?"},
		},
		{
			name:    "removed unknown start",
			added:   bcd.Unversioned(),
			removed: bcd.Release("35"),
			want:    resolve.Label{Class: resolve.ClassNo, Title: "No support", Version: "? — 35"},
		},
		{
			name:    "removed wins over partial",
			added:   bcd.Release("25"),
			removed: bcd.Release("35"),
			partial: true,
			want:    resolve.Label{Class: resolve.ClassNo, Title: "No support", Version: "25 — 35"},
		},
		{
			name:    "partial release",
			added:   bcd.Release("25"),
			partial: true,
			want:    resolve.Label{Class: resolve.ClassPartial, Title: "Partial support", Version: "25"},
		},
		{
			name:    "partial unversioned",
			added:   bcd.Unversioned(),
			partial: true,
			want:    resolve.Label{Class: resolve.ClassPartial, Title: "Partial support", Version: "Partial"},
		},
		{
			name:    "partial never",
			added:   bcd.None(),
			removed: bcd.None(),
			partial: true,
			want:    resolve.Label{Class: resolve.ClassPartial, Title: "Partial support", Version: "Partial"},
		},
		{
			name:    "partial unknown",
			added:   bcd.Unknown(),
			partial: true,
			want:    resolve.Label{Class: resolve.ClassPartial, Title: "Partial support", Version: "Partial"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolve.CellLabel(strs, tt.added, tt.removed, tt.partial)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("label mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCellLabelIsTotal(t *testing.T) {
	strs := l10n.Default()
	for _, added := range allVersions {
		for _, removed := range allVersions {
			for _, partial := range []bool{false, true} {
				label := resolve.CellLabel(strs, added, removed, partial)
				if label.Class == "" || label.Title == "" || label.Text() == "" {
					t.Errorf("added=%v removed=%v partial=%v produced incomplete label %+v", added, removed, partial, label)
				}
			}
		}
	}
}

func TestCellLabelUsesOverrides(t *testing.T) {
	strs := l10n.Default().Merge(map[string]string{"supportsShort_yes": "Ja"})
	if got := resolve.CellLabel(strs, bcd.Unversioned(), bcd.Unknown(), false).Short; got != "Ja" {
		t.Fatalf("expected override, got %q", got)
	}
}
