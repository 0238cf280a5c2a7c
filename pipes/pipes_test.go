package pipes

import (
	"io"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T, socketPath string, handler http.Handler) {
	l, err := CreateListener(socketPath)
	require.NoError(t, err)
	s := &http.Server{Handler: handler}
	done := make(chan error, 1)
	go func() {
		done <- s.Serve(l)
	}()
	t.Cleanup(func() {
		assert.NoError(t, s.Close())
		assert.Equal(t, http.ErrServerClosed, <-done)
	})
}

func TestServerClose(t *testing.T) {
	startServer(t, filepath.Join(t.TempDir(), "sock"), httphelpers.HandlerWithStatus(200))
}

func TestCreateListenerMakesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "sock")
	l, err := CreateListener(path)
	require.NoError(t, err)
	assert.NoError(t, l.Close())
}

func TestServerRequest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sock")
	handler, requestsCh := httphelpers.RecordingHandler(
		httphelpers.HandlerWithResponse(200, nil, []byte("hello")))
	startServer(t, path, handler)

	c := http.Client{
		Transport: &http.Transport{
			DialContext: CreateDialer(path),
		},
	}

	for i := 0; i < 10; i++ {
		resp, err := c.Get("http://pipe/path")
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)
		assert.Equal(t, "hello", string(body))

		info := <-requestsCh
		assert.Equal(t, "/path", info.Request.URL.Path)
	}
}

func TestDialWithoutListener(t *testing.T) {
	c := http.Client{
		Transport: &http.Transport{
			DialContext: CreateDialer(filepath.Join(t.TempDir(), "nobody-home")),
		},
	}
	_, err := c.Get("http://pipe/")
	assert.Error(t, err)
}
