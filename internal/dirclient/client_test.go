package dirclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presence/internal/directory"
	"presence/internal/testutil"
)

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSync_WritesAndSkipsUnchanged(t *testing.T) {
	srv := serve(t, http.StatusOK, testutil.SampleXML)
	path := filepath.Join(t.TempDir(), "users.xml")
	c := New(srv.URL)

	written, err := c.Sync(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, written)

	entries, err := directory.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	written, err = c.Sync(context.Background(), path)
	require.NoError(t, err)
	assert.False(t, written)
}

func TestSync_RejectsInvalidDocument(t *testing.T) {
	srv := serve(t, http.StatusOK, "<html>login</html")
	path := testutil.WriteFile(t, "users.xml", testutil.SampleXML)

	written, err := New(srv.URL).Sync(context.Background(), path)

	assert.ErrorIs(t, err, directory.ErrDataSource)
	assert.False(t, written)
	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, testutil.SampleXML, string(current))
}

func TestFetch_ServerError(t *testing.T) {
	srv := serve(t, http.StatusBadGateway, "upstream down")

	_, err := New(srv.URL).Fetch(context.Background())

	assert.ErrorContains(t, err, "502")
	assert.ErrorContains(t, err, "upstream down")
}
