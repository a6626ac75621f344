// Package browse walks a compat dataset interactively and returns the feature,
// depth and renderer to draw a table for.
package browse

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-compattable/pkg/bcd"
)

const (
	renderChoice = "» render this table"
	upChoice     = ".."
)

// Selection is the outcome of a browse session.
type Selection struct {
	Query    string
	Depth    int
	Renderer string
}

// Browser drives the prompts.
type Browser struct {
	driver       PromptDriver
	renderers    []string
	defaultDepth int
	pageSize     int
}

// Option customises a Browser.
type Option func(*Browser)

// WithRenderers lists the renderer names offered at the end of a session.
func WithRenderers(names ...string) Option {
	return func(b *Browser) {
		b.renderers = append([]string(nil), names...)
	}
}

// WithDefaultDepth sets the depth proposed to the user.
func WithDefaultDepth(depth int) Option {
	return func(b *Browser) {
		b.defaultDepth = depth
	}
}

// WithPageSize sets how many options a select prompt shows at once.
func WithPageSize(size int) Option {
	return func(b *Browser) {
		b.pageSize = size
	}
}

// New returns a Browser using driver, or the survey driver when nil.
func New(driver PromptDriver, opts ...Option) *Browser {
	if driver == nil {
		driver = NewSurveyDriver()
	}
	b := &Browser{
		driver:       driver,
		defaultDepth: 1,
		pageSize:     15,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Run starts at start (empty for the dataset root) and lets the user descend
// until a feature is picked.
func (b *Browser) Run(ctx context.Context, root *bcd.Node, start string) (Selection, error) {
	path := strings.Trim(strings.TrimSpace(start), ".")
	if root.Lookup(path) == nil {
		return Selection{}, fmt.Errorf("%w: %q", ErrNotFound, path)
	}

	query, err := b.pickFeature(ctx, root, path)
	if err != nil {
		return Selection{}, err
	}
	depth, err := b.askDepth(ctx)
	if err != nil {
		return Selection{}, err
	}
	renderer, err := b.pickRenderer(ctx)
	if err != nil {
		return Selection{}, err
	}
	return Selection{Query: query, Depth: depth, Renderer: renderer}, nil
}

func (b *Browser) pickFeature(ctx context.Context, root *bcd.Node, path string) (string, error) {
	for {
		node := root.Lookup(path)
		options := choicesFor(node, path)
		if len(options) == 0 {
			return "", fmt.Errorf("%w: %q has no entries", ErrNotFound, path)
		}

		idx, err := b.driver.Select(ctx, SelectConfig{
			Message:  promptFor(path),
			Options:  options,
			PageSize: b.pageSize,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(options) {
			return "", errors.New("browse: selection out of range")
		}

		switch choice := options[idx]; choice {
		case renderChoice:
			return path, nil
		case upChoice:
			path = parentOf(path)
		default:
			path = joinPath(path, strings.TrimSuffix(choice, "/"))
		}
	}
}

// choicesFor lists the render entry, the children (those with their own
// children end in "/") and the way back up.
func choicesFor(node *bcd.Node, path string) []string {
	var options []string
	if path != "" && node.Compat != nil {
		options = append(options, renderChoice)
	}
	for _, key := range node.Keys() {
		if node.Child(key).Len() > 0 {
			options = append(options, key+"/")
			continue
		}
		options = append(options, key)
	}
	if path != "" {
		options = append(options, upChoice)
	}
	return options
}

func (b *Browser) askDepth(ctx context.Context) (int, error) {
	raw, err := b.driver.Input(ctx, InputConfig{
		Message:   "Depth of sub-features to list",
		Default:   strconv.Itoa(b.defaultDepth),
		Validator: validateDepth,
	})
	if err != nil {
		return 0, err
	}
	if err := validateDepth(raw); err != nil {
		return 0, err
	}
	depth, _ := strconv.Atoi(strings.TrimSpace(raw))
	return depth, nil
}

func validateDepth(raw string) error {
	depth, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || depth < 0 {
		return fmt.Errorf("depth must be a non-negative number, got %q", raw)
	}
	return nil
}

func (b *Browser) pickRenderer(ctx context.Context) (string, error) {
	switch len(b.renderers) {
	case 0:
		return "", nil
	case 1:
		return b.renderers[0], nil
	}
	idx, err := b.driver.Select(ctx, SelectConfig{
		Message: "Output format",
		Options: b.renderers,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(b.renderers) {
		return "", errors.New("browse: selection out of range")
	}
	return b.renderers[idx], nil
}

func promptFor(path string) string {
	if path == "" {
		return "Pick a feature area"
	}
	return path
}

func parentOf(path string) string {
	idx := strings.LastIndex(path, ".")
	if idx < 0 {
		return ""
	}
	return path[:idx]
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
