package upload

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/specialistvlad/gridvm/internal/raster"
	"github.com/specialistvlad/gridvm/internal/registry"
	"github.com/specialistvlad/gridvm/modules/pgm"
	"github.com/specialistvlad/gridvm/modules/png"
	"github.com/stretchr/testify/require"
)

type received struct {
	mu          sync.Mutex
	method      string
	contentType string
	token       string
	body        []byte
}

func newServer(t *testing.T, status int) (*httptest.Server, *received) {
	t.Helper()
	got := &received{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got.mu.Lock()
		got.method = r.Method
		got.contentType = r.Header.Get("Content-Type")
		got.token = r.Header.Get("X-Token")
		got.body = body
		got.mu.Unlock()
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	(&pgm.Module{}).Register(reg)
	(&png.Module{}).Register(reg)
	(&Module{}).Register(reg)
	require.NoError(t, reg.ValidateRegistry(context.Background()))
	return reg
}

func TestUpload_PutsEncodedImage(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	srv, got := newServer(t, http.StatusOK)
	img := &raster.Image{Size: 1, Pix: []uint8{255}}
	input := &Input{URL: srv.URL + "/bucket/out.pgm?sig=abc", Headers: map[string]string{"X-Token": "t0k"}}

	// --- Act ---
	err := Upload(context.Background(), newRegistry(t), img, input)

	// --- Assert ---
	require.NoError(t, err)
	got.mu.Lock()
	defer got.mu.Unlock()
	require.Equal(t, http.MethodPut, got.method)
	require.Equal(t, "image/x-portable-graymap", got.contentType)
	require.Equal(t, "t0k", got.token)
	require.Equal(t, append([]byte("P5\n1 1\n255\n"), 255), got.body)
}

func TestUpload_PostPNG(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	srv, got := newServer(t, http.StatusCreated)
	img := &raster.Image{Size: 2, Pix: []uint8{0, 255, 255, 0}}

	// --- Act ---
	err := Upload(context.Background(), newRegistry(t), img, &Input{URL: srv.URL, Method: "post", Format: "png"})

	// --- Assert ---
	require.NoError(t, err)
	got.mu.Lock()
	defer got.mu.Unlock()
	require.Equal(t, http.MethodPost, got.method)
	require.Equal(t, "image/png", got.contentType)
	require.Equal(t, []byte("\x89PNG"), got.body[:4])
}

func TestUpload_Errors(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t, http.StatusForbidden)
	img := &raster.Image{Size: 1, Pix: []uint8{0}}

	testCases := []struct {
		name    string
		input   *Input
		wantErr string
	}{
		{name: "rejected", input: &Input{URL: srv.URL}, wantErr: "upload failed with status: 403"},
		{name: "bad method", input: &Input{URL: srv.URL, Method: "DELETE"}, wantErr: "unsupported upload method"},
		{name: "relative url", input: &Input{URL: "/bucket/out.pgm"}, wantErr: "must be an absolute http(s) url"},
		{name: "bad timeout", input: &Input{URL: srv.URL, Timeout: "soon"}, wantErr: "invalid timeout"},
		{name: "unknown format", input: &Input{URL: srv.URL, Format: "gif"}, wantErr: "unknown image format 'gif'"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := Upload(context.Background(), newRegistry(t), img, tc.input)

			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestUpload_Timeout(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})
	img := &raster.Image{Size: 1, Pix: []uint8{0}}

	// --- Act ---
	start := time.Now()
	err := Upload(context.Background(), newRegistry(t), img, &Input{URL: srv.URL, Timeout: "50ms"})

	// --- Assert ---
	require.ErrorContains(t, err, "failed to execute upload request")
	require.Less(t, time.Since(start), 5*time.Second)
}
