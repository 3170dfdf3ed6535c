package media

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ankiword/ankiword/internal/testutil"
)

func quietResolver(options *ResolverOptions) *Resolver {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	r := NewResolver(options, log)
	r.now = func() time.Time { return time.Unix(1700000000, 0) }
	return r
}

func TestSplitSources(t *testing.T) {
	tests := []struct {
		name    string
		sources string
		want    []string
	}{
		{
			name:    "empty input",
			sources: "",
			want:    nil,
		},
		{
			name:    "single path",
			sources: "/tmp/pic.jpg",
			want:    []string{"/tmp/pic.jpg"},
		},
		{
			name:    "mixed list with spaces and quotes",
			sources: ` 'https://example.com/a.png' , "/home/u/b.jpg",  `,
			want:    []string{"https://example.com/a.png", "/home/u/b.jpg"},
		},
		{
			name:    "only separators",
			sources: " , , ",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSources(tt.sources)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitSources() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("SplitSources()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestResolveLocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pic.png")
	testutil.CreateTestFile(t, path, []byte("pngdata"))

	resolver := quietResolver(nil)
	images := resolver.ResolveSources(context.Background(), path)

	if len(images) != 1 {
		t.Fatalf("ResolveSources() = %v, want one image", images)
	}
	if images[0].Filename != "anki_img_1700000000_0.png" {
		t.Errorf("Filename = %q", images[0].Filename)
	}
	decoded, err := base64.StdEncoding.DecodeString(images[0].Data)
	if err != nil || string(decoded) != "pngdata" {
		t.Errorf("Data did not round-trip: %v", err)
	}
}

func TestResolveURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jpegdata"))
	}))
	defer server.Close()

	resolver := quietResolver(nil)
	images := resolver.ResolveSources(context.Background(), server.URL+"/img.jpg")

	if len(images) != 1 {
		t.Fatalf("ResolveSources() = %v, want one image", images)
	}
	if !strings.HasSuffix(images[0].Filename, ".jpg") {
		t.Errorf("Filename = %q, want .jpg suffix", images[0].Filename)
	}
}

func TestResolveSkipsFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	dir := t.TempDir()
	good := filepath.Join(dir, "ok.jpg")
	testutil.CreateTestFile(t, good, []byte("data"))

	sources := strings.Join([]string{
		server.URL + "/missing.jpg",
		filepath.Join(dir, "does-not-exist.jpg"),
		good,
	}, ",")

	resolver := quietResolver(nil)
	images := resolver.ResolveSources(context.Background(), sources)

	if len(images) != 1 {
		t.Fatalf("ResolveSources() = %d images, want the one good source", len(images))
	}
}

func TestResolveNothing(t *testing.T) {
	resolver := quietResolver(nil)
	if images := resolver.ResolveSources(context.Background(), "/nope/missing.jpg"); len(images) != 0 {
		t.Errorf("ResolveSources() = %v, want none", images)
	}
}

func TestOversizeImageRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 2048))
	}))
	defer server.Close()

	resolver := quietResolver(&ResolverOptions{
		Timeout:      5 * time.Second,
		MaxSizeBytes: 1024,
	})
	if images := resolver.ResolveSources(context.Background(), server.URL+"/big.jpg"); len(images) != 0 {
		t.Errorf("oversize image was not rejected")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "tilde only",
			in:   "~",
			want: home,
		},
		{
			name: "tilde with path",
			in:   "~/pics/a.jpg",
			want: filepath.Join(home, "pics", "a.jpg"),
		},
		{
			name: "absolute path untouched",
			in:   "/tmp/a.jpg",
			want: "/tmp/a.jpg",
		},
		{
			name: "tilde in the middle untouched",
			in:   "/tmp/~x",
			want: "/tmp/~x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandHome(tt.in); got != tt.want {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestURLExtension(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "plain extension",
			url:  "https://example.com/a.png",
			want: ".png",
		},
		{
			name: "query string stripped",
			url:  "https://example.com/a.webp?w=400",
			want: ".webp",
		},
		{
			name: "no extension falls back to jpg",
			url:  "https://example.com/image",
			want: ".jpg",
		},
		{
			name: "suspiciously long extension falls back",
			url:  "https://example.com/a.something",
			want: ".jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := urlExtension(tt.url); got != tt.want {
				t.Errorf("urlExtension(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
