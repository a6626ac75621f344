package html_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	nethtml "golang.org/x/net/html"

	"github.com/goliatone/go-compattable/pkg/collect"
	"github.com/goliatone/go-compattable/pkg/l10n"
	"github.com/goliatone/go-compattable/pkg/profile"
	"github.com/goliatone/go-compattable/pkg/render"
	htmlrenderer "github.com/goliatone/go-compattable/pkg/renderers/html"
	"github.com/goliatone/go-compattable/pkg/table"
	"github.com/goliatone/go-compattable/pkg/testsupport"
)

const mdnPage = "https://developer.mozilla.org/docs/Web/HTTP/Headers/Content-Security-Policy"

func buildTable(t *testing.T, query, forMDNURL string) table.Table {
	t.Helper()
	strs := l10n.Default()
	root := testsupport.Dataset(t).Lookup(query)
	tbl, err := table.Build(collect.Features(root, 1, query, strs.Get("feature_basicsupport")), table.Options{
		Profile:   profile.ForQuery(query),
		Strings:   strs,
		Query:     query,
		ForMDNURL: forMDNURL,
	})
	if err != nil {
		t.Fatalf("build table: %v", err)
	}
	return tbl
}

func renderQuery(t *testing.T, query, forMDNURL string) *nethtml.Node {
	t.Helper()
	renderer, err := htmlrenderer.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output, err := renderer.Render(testsupport.Context(), buildTable(t, query, forMDNURL), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	doc, err := nethtml.Parse(bytes.NewReader(output))
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	return doc
}

func TestRenderer_PlatformColumns(t *testing.T) {
	tests := []struct {
		query    string
		category string
		spans    map[string]string
	}{
		{query: "api.feature", category: "bc-table-web", spans: map[string]string{"desktop": "6", "mobile": "7"}},
		{query: "css.feature", category: "bc-table-web", spans: map[string]string{"desktop": "6", "mobile": "7"}},
		{query: "html.feature", category: "bc-table-web", spans: map[string]string{"desktop": "6", "mobile": "7"}},
		{query: "http.feature", category: "bc-table-web", spans: map[string]string{"desktop": "6", "mobile": "7"}},
		{query: "javascript.feature", category: "bc-table-js", spans: map[string]string{"desktop": "6", "mobile": "7", "server": "1"}},
		{query: "webextensions.feature", category: "bc-table-ext", spans: map[string]string{"desktop": "4", "mobile": "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			doc := renderQuery(t, tt.query, "")
			tbl := first(t, doc, byClass("bc-table"))
			if !hasClass(tbl, tt.category) {
				t.Fatalf("table classes %q missing %q", attr(tbl, "class"), tt.category)
			}
			for platform, span := range tt.spans {
				th := first(t, doc, byClass("bc-platform-"+platform))
				if got := attr(th, "colspan"); got != span {
					t.Fatalf("%s colspan = %q, want %q", platform, got, span)
				}
			}
		})
	}
}

func TestRenderer_FeatureLabels(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		forMDNURL string
		want      []string
	}{
		{name: "bare", query: "api.bareFeature", want: []string{"Basic support", "<code>bareSubFeature</code>"}},
		{name: "description", query: "api.feature_with_description", want: []string{"Basic support", "<code>Interface()</code> constructor"}},
		{
			name:      "mdn url",
			query:     "api.feature_with_mdn_url",
			forMDNURL: mdnPage,
			want: []string{
				"Basic support",
				`<a href="/docs/Web/HTTP/Headers/Content-Security-Policy/child-src"><code>subfeature_with_mdn_url</code></a>`,
				`<a href="#Directives"><code>anchored_subfeature</code></a>`,
			},
		},
		{
			name:      "mdn url and description",
			query:     "api.feature_with_mdn_url_and_description",
			forMDNURL: mdnPage,
			want: []string{
				"Basic support",
				`<a href="/docs/Web/HTTP/Headers/Content-Security-Policy/child-src">CSP: child-src</a>`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := renderQuery(t, tt.query, tt.forMDNURL)
			var got []string
			for _, tr := range bodyRows(t, doc) {
				got = append(got, innerHTML(t, elementChildren(tr)[0]))
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("row headers mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderer_StatusIcons(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{query: "api.experimental_feature", want: []string{"Basic support Experimental", "experimental_non-standard_sub_feature ExperimentalNon-standard"}},
		{query: "api.deprecated_feature_with_description", want: []string{"Basic support Deprecated", "Deprecated syntax Deprecated"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			doc := renderQuery(t, tt.query, "")
			var got []string
			for _, tr := range bodyRows(t, doc) {
				got = append(got, text(elementChildren(tr)[0]))
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("row text mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderer_SupportCells(t *testing.T) {
	tests := []struct {
		query string
		class string
		title string
		text  string
	}{
		{query: "html.no_support", class: "bc-supports-no", title: "No support", text: "No"},
		{query: "html.unknown_version_support", class: "bc-supports-yes", title: "Full support", text: "Yes"},
		{query: "html.versioned_support", class: "bc-supports-yes", title: "Full support", text: "25"},
		{query: "html.removed_support", class: "bc-supports-no", title: "No support", text: "25 — 35"},
		{query: "html.removed_support_unknown_start", class: "bc-supports-no", title: "No support", text: "? — 35"},
		{query: "html.removed_support_unknown_end", class: "bc-supports-no", title: "No support", text: "25 — ?"},
		{query: "html.removed_support_unknown_range", class: "bc-supports-no", title: "No support", text: "? — ?"},
		{query: "html.partial_versioned_support", class: "bc-supports-partial", title: "Partial support", text: "25"},
		{query: "html.partial_unknown_version_support", class: "bc-supports-partial", title: "Partial support", text: "Partial"},
		{query: "html.partial_no_support", class: "bc-supports-partial", title: "Partial support", text: "Partial"},
		{query: "html.partial_unknown_support", class: "bc-supports-partial", title: "Partial support", text: "Partial"},
		{query: "html.partial_removed_support", class: "bc-supports-no", title: "No support", text: "25 — 35"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			doc := renderQuery(t, tt.query, "")
			// Column 4 is firefox: the row header, chrome and edge come first.
			td := elementChildren(bodyRows(t, doc)[0])[3]
			if !hasClass(td, tt.class) || !hasClass(td, "bc-browser-firefox") {
				t.Fatalf("cell classes %q, want %q", attr(td, "class"), tt.class)
			}
			span := first(t, td, byTag("span"))
			if got := text(span); got != tt.title {
				t.Fatalf("support title = %q, want %q", got, tt.title)
			}
			if got := text(td); !strings.Contains(got, tt.text) {
				t.Fatalf("cell text %q does not contain %q", got, tt.text)
			}
		})
	}
}

func TestRenderer_UnknownRuntimeCell(t *testing.T) {
	doc := renderQuery(t, "html.no_support", "")
	td := elementChildren(bodyRows(t, doc)[0])[1]
	if !hasClass(td, "bc-supports-unknown") || !hasClass(td, "bc-browser-chrome") {
		t.Fatalf("unexpected classes %q", attr(td, "class"))
	}
	abbr := first(t, td, byTag("abbr"))
	if attr(abbr, "title") != "Compatibility unknown; please update this." || text(abbr) != "?" {
		t.Fatalf("unexpected unknown marker %q / %q", attr(abbr, "title"), text(abbr))
	}
}

func TestRenderer_HistoryIcons(t *testing.T) {
	tests := []struct {
		query string
		icon  string
	}{
		{query: "alternative_name.feature", icon: "ic-altname"},
		{query: "notes.feature", icon: "ic-footnote"},
		{query: "flags.feature", icon: "ic-disabled"},
		{query: "prefixes.feature", icon: "ic-prefix"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			doc := renderQuery(t, tt.query, "")
			td := first(t, doc, byTag("td"), within(byTag("tbody")))
			if !hasClass(td, "bc-has-history") {
				t.Fatalf("expected bc-has-history on %q", attr(td, "class"))
			}
			icons := first(t, doc, byClass("bc-icons"))
			if i := first(t, icons, byTag("i")); !hasClass(i, tt.icon) {
				t.Fatalf("expected %s, got %q", tt.icon, attr(i, "class"))
			}
		})
	}

	doc := renderQuery(t, "notes.feature", "")
	firefox := first(t, doc, byClass("bc-browser-firefox"), within(byTag("tbody")))
	var direct *nethtml.Node
	for _, child := range elementChildren(firefox) {
		if hasClass(child, "bc-icons") {
			direct = child
		}
	}
	if direct == nil {
		t.Fatalf("firefox cell has no direct icon block")
	}
	abbr := elementChildren(direct)[0]
	if i := elementChildren(abbr)[1]; !hasClass(i, "ic-footnote") {
		t.Fatalf("expected footnote icon, got %q", attr(i, "class"))
	}
}

func TestRenderer_FlagNotes(t *testing.T) {
	doc := renderQuery(t, "flags.feature", "")
	var got []string
	for _, dd := range findAll(doc, byTag("dd"), within(byClass("bc-history"))) {
		got = append(got, text(dd))
	}
	want := []string{
		"Disabled From version 10: this feature is behind the Enable experimental Web Platform features preference. To change preferences in Chrome, visit chrome://flags.",
		"Disabled From version 17: this feature is behind the --number-format-to-parts runtime flag.",
		"",
		"Disabled From version 5: this feature is behind the layout.css.vertical-text.enabled preference (needs to be set to true). To change preferences in Firefox, visit about:config.",
		"Disabled From version 45: this feature is behind the foo.enabled preference and the bar.enabled preference.",
		"Disabled From version 55 until version 60 (exclusive): this feature is behind the --datetime-format-to-parts compile flag.",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("flag notes mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_LegendOrder(t *testing.T) {
	doc := renderQuery(t, "notes.feature", "")
	legend := first(t, doc, byClass("bc-legend"))
	if got := text(first(t, legend, byTag("h3"))); got != "Legend" {
		t.Fatalf("legend title = %q", got)
	}
	var got []string
	for _, dd := range findAll(legend, byTag("dd")) {
		got = append(got, text(dd))
	}
	want := []string{"Full support", "Compatibility unknown", "See implementation notes."}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("legend mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_Standalone(t *testing.T) {
	renderer, err := htmlrenderer.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output, err := renderer.Render(testsupport.Context(), buildTable(t, "api.feature", ""), render.RenderOptions{
		Standalone: true,
		Stylesheet: "/assets/site.css",
		Locale:     "de",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	doc, err := nethtml.Parse(bytes.NewReader(output))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := attr(first(t, doc, byTag("html")), "lang"); got != "de" {
		t.Fatalf("lang = %q", got)
	}
	if got := text(first(t, doc, byTag("title"))); got != "api.feature | Browser compatibility" {
		t.Fatalf("title = %q", got)
	}
	if got := attr(first(t, doc, byTag("link")), "href"); got != "/assets/site.css" {
		t.Fatalf("stylesheet = %q", got)
	}
	if !strings.Contains(text(first(t, doc, byTag("style"))), ".bc-table") {
		t.Fatalf("expected inline default styles")
	}
	first(t, doc, byClass("bc-data"), within(byTag("body")))
}

func TestRenderer_TranslateHelper(t *testing.T) {
	renderer, err := htmlrenderer.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	tbl := buildTable(t, "api.feature", "")

	tests := []struct {
		name    string
		strings l10n.Strings
		want    string
	}{
		{name: "engine default", want: "api.feature | Browser compatibility"},
		{
			name:    "render strings",
			strings: l10n.Default().Merge(map[string]string{"page_title": "Compatibilité"}),
			want:    "api.feature | Compatibilité",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := renderer.Render(testsupport.Context(), tbl, render.RenderOptions{Standalone: true, Strings: tt.strings})
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			doc, err := nethtml.Parse(bytes.NewReader(output))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got := text(first(t, doc, byTag("title"))); got != tt.want {
				t.Fatalf("title = %q, want %q", got, tt.want)
			}
		})
	}
}

type recordingTemplates struct {
	globals []any
	data    []any
}

func (r *recordingTemplates) RenderTemplate(name string, data any, _ ...io.Writer) (string, error) {
	r.data = append(r.data, data)
	return "<div>" + name + "</div>", nil
}

func (r *recordingTemplates) GlobalContext(data any) error {
	r.globals = append(r.globals, data)
	return nil
}

func TestRenderer_InstallsHelpersOnCustomEngine(t *testing.T) {
	templates := &recordingTemplates{}
	renderer, err := htmlrenderer.New(htmlrenderer.WithTemplateRenderer(templates))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if len(templates.globals) != 1 {
		t.Fatalf("expected helpers installed once, got %d", len(templates.globals))
	}
	globals, ok := templates.globals[0].(map[string]any)
	if !ok {
		t.Fatalf("unexpected globals type %T", templates.globals[0])
	}
	if _, ok := globals[l10n.TemplateHelper]; !ok {
		t.Fatalf("translate helper missing from globals: %v", globals)
	}

	output, err := renderer.Render(testsupport.Context(), buildTable(t, "api.feature", ""), render.RenderOptions{Strings: l10n.Default()})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(output) != "<div>templates/table</div>\n" {
		t.Fatalf("unexpected output %q", output)
	}
	data, ok := templates.data[0].(map[string]any)
	if !ok {
		t.Fatalf("unexpected data type %T", templates.data[0])
	}
	if _, ok := data[l10n.TemplateHelper]; !ok {
		t.Fatalf("render data must carry the per-render translate helper")
	}
}

func TestRenderer_EscapesAttributes(t *testing.T) {
	renderer, err := htmlrenderer.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	tbl := buildTable(t, "alternative_name.feature", "")
	output, err := renderer.Render(testsupport.Context(), tbl, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(output), `title="Uses the non-standard name: &lt;code&gt;webkitFeature&lt;/code&gt;"`) {
		t.Fatalf("expected escaped altname title in output:\n%s", output)
	}
	if strings.Count(string(output), "<code>webkitFeature</code>") != 1 {
		t.Fatalf("expected altname note rendered as markup once:\n%s", output)
	}
}

func TestAssetsFSIncludesStylesheet(t *testing.T) {
	if _, err := htmlrenderer.AssetsFS().Open(htmlrenderer.StylesheetName); err != nil {
		t.Fatalf("expected stylesheet in assets: %v", err)
	}
}
