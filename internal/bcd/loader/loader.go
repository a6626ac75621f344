package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-compattable/pkg/bcd"
)

// Loader implements bcd.Loader by delegating to file, fs.FS, or HTTP
// strategies.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

var _ bcd.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options bcd.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// Load fetches a document from the provided source and wraps it in a Document.
func (l *Loader) Load(ctx context.Context, src bcd.Source) (bcd.Document, error) {
	if src == nil {
		return bcd.Document{}, errors.New("bcd loader: source is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case bcd.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case bcd.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case bcd.SourceKindURL:
		if !l.allowHTTP {
			return bcd.Document{}, errors.New("bcd loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = errors.New("bcd loader: unsupported source kind")
	}
	if err != nil {
		return bcd.Document{}, err
	}

	return bcd.NewDocument(src, data)
}
