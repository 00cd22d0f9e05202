package drive

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexdraft/internal/connectors/google"
	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

type fakeDrive struct {
	folders map[string][]map[string]any // parent id -> children
	content map[string]string           // file id -> body
	fail    map[string]int              // file id -> status
}

func (f *fakeDrive) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p := strings.TrimPrefix(r.URL.Path, "/")
	switch {
	case p == "files":
		q := r.URL.Query().Get("q")
		parent := q[strings.Index(q, "'")+1 : strings.Index(q, "' in parents")]
		var files []map[string]any
		for _, c := range f.folders[parent] {
			isFolder := c["mimeType"] == MimeTypeFolder
			if strings.Contains(q, "mimeType = ") && !isFolder {
				continue
			}
			files = append(files, c)
		}
		// Serve one entry per page to exercise pagination.
		page := 0
		if tok := r.URL.Query().Get("pageToken"); tok != "" {
			page = int(tok[0] - '0')
		}
		resp := map[string]any{"files": []any{}}
		if page < len(files) {
			resp["files"] = files[page : page+1]
			if page+1 < len(files) {
				resp["nextPageToken"] = string(rune('0' + page + 1))
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)

	case strings.HasPrefix(p, "files/"):
		id := strings.TrimSuffix(strings.TrimPrefix(p, "files/"), "/export")
		if code, ok := f.fail[id]; ok {
			http.Error(w, "backend error", code)
			return
		}
		body, ok := f.content[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))

	default:
		http.NotFound(w, r)
	}
}

func folder(id, name string) map[string]any {
	return map[string]any{"id": id, "name": name, "mimeType": MimeTypeFolder}
}

func file(id, name, mime string) map[string]any {
	return map[string]any{"id": id, "name": name, "mimeType": mime, "size": "10"}
}

func newTestSource(t *testing.T, fd *fakeDrive) *SampleSource {
	t.Helper()
	srv := httptest.NewServer(fd)
	t.Cleanup(srv.Close)

	svc, err := google.NewDriveService(context.Background(), google.Credentials{
		APIKey:   "test-key",
		Endpoint: srv.URL + "/",
	})
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.FolderID = "root"
	cfg.RateLimit = google.RateLimitConfig{RequestsPerSecond: 1000, BurstSize: 100}
	return NewSampleSource(svc, cfg)
}

func TestSampleSource_Pull(t *testing.T) {
	fd := &fakeDrive{
		folders: map[string][]map[string]any{
			"root": {
				folder("f-writ", "Writ_Petition"),
				folder("f-civil", "civil suit"),
				file("loose", "readme.txt", "text/plain"),
			},
			"f-writ": {
				file("w1", "w1.txt", "text/plain"),
				file("w2", "Habeas corpus", MimeTypeGoogleDoc),
				file("w3", "photo.png", "image/png"),
			},
			"f-civil": {
				file("c1", "c1.md", "text/markdown"),
				file("c2", "broken.txt", "text/plain"),
			},
		},
		content: map[string]string{
			"w1": "writ sample one",
			"w2": "exported habeas corpus",
			"c1": "civil sample",
		},
		fail: map[string]int{"c2": http.StatusInternalServerError},
	}
	src := newTestSource(t, fd)
	dir := t.TempDir()

	n, err := src.Pull(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	for path, want := range map[string]string{
		"Writ_Petition/w1.txt":            "writ sample one",
		"Writ_Petition/Habeas corpus.txt": "exported habeas corpus",
		"civil suit/c1.md":                "civil sample",
	} {
		got, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(path)))
		require.NoError(t, err, path)
		assert.Equal(t, want, string(got))
	}

	assert.NoFileExists(t, filepath.Join(dir, "Writ_Petition", "photo.png"))
	assert.NoFileExists(t, filepath.Join(dir, "readme.txt"))
	assert.NoFileExists(t, filepath.Join(dir, "civil suit", "broken.txt"))
}

func TestSampleSource_PullWithoutFolder(t *testing.T) {
	src := newTestSource(t, &fakeDrive{})
	src.cfg.FolderID = ""

	_, err := src.Pull(context.Background(), t.TempDir())

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSampleSource_PullCancelled(t *testing.T) {
	src := newTestSource(t, &fakeDrive{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.Pull(ctx, t.TempDir())

	assert.Error(t, err)
}
