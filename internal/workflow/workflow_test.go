package workflow

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"rocket-launches/internal/config"
	"rocket-launches/internal/modules/filereader"
)

func newLaunchServer(t *testing.T, document func(base string) string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/launch/upcoming" {
			w.Write([]byte(document("http://" + r.Host)))
			return
		}
		w.Write([]byte("image " + r.URL.Path))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func testConfig(t *testing.T, launchesURL string) *config.Config {
	t.Helper()
	root := t.TempDir()
	return &config.Config{
		LaunchesURL:     launchesURL,
		LaunchesPath:    filepath.Join(root, "launches.json"),
		ImagesDir:       filepath.Join(root, "images"),
		Schedule:        "@daily",
		StartOffsetDays: 14,
		LogLevel:        "info",
	}
}

func TestBuild_Run(t *testing.T) {
	ts := newLaunchServer(t, func(base string) string {
		return fmt.Sprintf(`{"results":[{"image":"%[1]s/a.jpg"},{"image":"not-a-url"},{"image":"%[1]s/media/b.png"}]}`, base)
	})
	cfg := testConfig(t, ts.URL+"/launch/upcoming")

	var out bytes.Buffer
	p, err := Build(cfg, time.Now(), &out, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, p.Run(context.Background()))

	a, err := os.ReadFile(filepath.Join(cfg.ImagesDir, "a.jpg"))
	require.NoError(t, err)
	require.Equal(t, "image /a.jpg", string(a))

	b, err := os.ReadFile(filepath.Join(cfg.ImagesDir, "b.png"))
	require.NoError(t, err)
	require.Equal(t, "image /media/b.png", string(b))

	require.Equal(t, "There are now 2 images.\n", out.String())
}

func TestBuild_RunStopsOnMalformedDocument(t *testing.T) {
	ts := newLaunchServer(t, func(string) string { return "<html>oops</html>" })
	cfg := testConfig(t, ts.URL+"/launch/upcoming")

	var out bytes.Buffer
	p, err := Build(cfg, time.Now(), &out, zaptest.NewLogger(t))
	require.NoError(t, err)

	err = p.Run(context.Background())
	require.True(t, errors.Is(err, filereader.ErrMalformedDocument), "got %v", err)
	require.Empty(t, out.String(), "notify must not run after a failed step")
}

func TestBuild_Definition(t *testing.T) {
	cfg := testConfig(t, config.DefaultLaunchesURL)
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	p, err := Build(cfg, now, nil, zaptest.NewLogger(t))
	require.NoError(t, err)

	def := p.Definition()
	require.Equal(t, ID, def.ID)
	require.Equal(t, Description, def.Description)
	require.Equal(t, "@daily", def.Schedule)
	require.Equal(t, "2026-10-04T00:00:00Z", def.StartDate)

	ids := make([]string, 0, len(def.Tasks))
	for _, task := range def.Tasks {
		ids = append(ids, task.ID)
	}
	require.Equal(t, []string{"download_launches", "get_pictures", "notify"}, ids)
}

func TestBuild_InvalidSchedule(t *testing.T) {
	cfg := testConfig(t, config.DefaultLaunchesURL)
	cfg.Schedule = "sometimes"

	_, err := Build(cfg, time.Now(), nil, zaptest.NewLogger(t))
	require.Error(t, err)
}
