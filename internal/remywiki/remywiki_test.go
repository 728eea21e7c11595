package remywiki

import (
	"carddraw-backend/internal/components/queue"
	"carddraw-backend/internal/components/telemetry"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	table := []struct {
		input    string
		expected string
	}{
		{
			input:    "HTTP://RemyWiki.com/./a/../Some_Song?b=2&a=1#History",
			expected: "https://remywiki.com/Some_Song?a=1&b=2",
		},
		{
			input:    "https://remywiki.com:443/Some_Song",
			expected: "https://remywiki.com/Some_Song",
		},
		{
			input:    "https://remywiki.com//Some_Song",
			expected: "https://remywiki.com/Some_Song",
		},
	}

	for _, row := range table {
		link, err := url.Parse(row.input)
		require.NoError(t, err)
		before := link.String()
		require.Equal(t, row.expected, Normalize(link), row.input)
		// the input is left alone
		require.Equal(t, before, link.String())
	}
}

func newWikiServer(t testing.TB) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/index.php", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>
			<link rel="stylesheet" href="/style.css">
			<link rel="canonical" href="/Some_Song#top">
		</head><body>redirected</body></html>`))
	})
	mux.HandleFunc("/Other_Song", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head></head><body>no canonical</body></html>`))
	})
	mux.HandleFunc("/Broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func httpsOf(server *httptest.Server) string {
	return strings.Replace(server.URL, "http://", "https://", 1)
}

func TestCanonicalize(t *testing.T) {
	server := newWikiServer(t)
	client := NewClient(ClientOptions{}, telemetry.NewRecorder())

	link, err := client.Canonicalize(
		context.Background(),
		server.URL+"/index.php?title=Some_Song&redirect=no",
	)
	require.NoError(t, err)
	require.Equal(t, httpsOf(server)+"/Some_Song", link)
}

func TestCanonicalizeWithoutCanonicalLink(t *testing.T) {
	server := newWikiServer(t)
	q := queue.New(1)
	client := NewClient(ClientOptions{Queue: q}, telemetry.NewRecorder())

	link, err := client.Canonicalize(context.Background(), server.URL+"/Other_Song#History")
	require.NoError(t, err)
	require.Equal(t, httpsOf(server)+"/Other_Song", link)
	require.Equal(t, 0, q.InFlight())
}

func TestCanonicalizeFailure(t *testing.T) {
	server := newWikiServer(t)
	recorder := telemetry.NewRecorder()
	client := NewClient(ClientOptions{}, recorder)

	_, err := client.Canonicalize(context.Background(), server.URL+"/Broken")
	require.Error(t, err)

	broken := recorder.Reports(telemetry.REPORT_BROKEN)
	require.Len(t, broken, 1)
	require.Equal(t, "remywiki: "+report_client_canonicalize, broken[0].Id)
}
