package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Image is one resolved picture source, ready for storeMediaFile
type Image struct {
	Filename string // collision-avoiding media name
	Data     string // base64-encoded payload
}

// ResolverOptions configures image source resolution
type ResolverOptions struct {
	Timeout      time.Duration // per-URL download timeout
	MaxSizeBytes int64         // maximum bytes accepted per image (0 = no limit)
}

// DefaultResolverOptions returns sensible defaults for image resolution
func DefaultResolverOptions() *ResolverOptions {
	return &ResolverOptions{
		Timeout:      15 * time.Second,
		MaxSizeBytes: 10 * 1024 * 1024, // 10MB
	}
}

// Resolver turns user-supplied picture sources (HTTP(S) URLs or local
// paths) into base64 payloads. Each source fails independently: a source
// that cannot be resolved is logged and skipped, never aborting the rest.
type Resolver struct {
	options    *ResolverOptions
	httpClient *http.Client
	log        *logrus.Logger
	now        func() time.Time
}

// NewResolver creates a new image source resolver
func NewResolver(options *ResolverOptions, log *logrus.Logger) *Resolver {
	if options == nil {
		options = DefaultResolverOptions()
	}
	if log == nil {
		log = logrus.New()
	}
	return &Resolver{
		options:    options,
		httpClient: &http.Client{Timeout: options.Timeout},
		log:        log,
		now:        time.Now,
	}
}

// ResolveSources resolves a comma-separated list of picture sources. The
// result contains one Image per source that could be fetched and encoded;
// an empty or all-failing input yields an empty slice.
func (r *Resolver) ResolveSources(ctx context.Context, sources string) []Image {
	var images []Image
	for i, source := range SplitSources(sources) {
		img, err := r.resolve(ctx, source, i)
		if err != nil {
			r.log.WithField("source", source).Warnf("skipping image: %v", err)
			continue
		}
		images = append(images, img)
	}
	return images
}

// SplitSources splits a comma-separated source list, trimming whitespace
// and shell-style quoting from each entry and dropping empties
func SplitSources(sources string) []string {
	var out []string
	for _, part := range strings.Split(sources, ",") {
		part = strings.Trim(strings.TrimSpace(part), `'"`)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (r *Resolver) resolve(ctx context.Context, source string, index int) (Image, error) {
	var data []byte
	var ext string
	var err error

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		data, ext, err = r.fetchURL(ctx, source)
	} else {
		data, ext, err = r.readFile(source)
	}
	if err != nil {
		return Image{}, err
	}

	return Image{
		Filename: r.filename(index, ext),
		Data:     base64.StdEncoding.EncodeToString(data),
	}, nil
}

// fetchURL downloads an image with the configured timeout and size cap
func (r *Resolver) fetchURL(ctx context.Context, imageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	var buf bytes.Buffer
	if r.options.MaxSizeBytes > 0 {
		written, err := io.CopyN(&buf, resp.Body, r.options.MaxSizeBytes)
		if err != nil && err != io.EOF {
			return nil, "", fmt.Errorf("failed to read image: %w", err)
		}
		if written == r.options.MaxSizeBytes {
			// One more byte tells us whether the image was truncated.
			if _, err := resp.Body.Read(make([]byte, 1)); err != io.EOF {
				return nil, "", fmt.Errorf("image exceeds maximum size of %d bytes", r.options.MaxSizeBytes)
			}
		}
	} else {
		if _, err := io.Copy(&buf, resp.Body); err != nil {
			return nil, "", fmt.Errorf("failed to read image: %w", err)
		}
	}
	if buf.Len() == 0 {
		return nil, "", fmt.Errorf("empty response body")
	}

	return buf.Bytes(), urlExtension(imageURL), nil
}

// readFile loads an image from a local path, expanding ~ shorthand
func (r *Resolver) readFile(source string) ([]byte, string, error) {
	p := ExpandHome(source)
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}
	ext := filepath.Ext(p)
	if ext == "" {
		ext = ".jpg"
	}
	return data, ext, nil
}

// filename builds a timestamp+index-derived media name so repeated
// submissions never collide
func (r *Resolver) filename(index int, ext string) string {
	return fmt.Sprintf("anki_img_%d_%d%s", r.now().Unix(), index, ext)
}

// ExpandHome resolves a leading ~ or ~/ to the user's home directory
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	return filepath.Join(home, p[2:])
}

// urlExtension guesses a file extension from a URL path, defaulting to .jpg
// when the path carries none or something that is clearly not an extension
func urlExtension(imageURL string) string {
	ext := path.Ext(strings.SplitN(imageURL, "?", 2)[0])
	if ext == "" || len(ext) > 5 {
		return ".jpg"
	}
	return ext
}
