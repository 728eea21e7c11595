package skillattack

import (
	"carddraw-backend/internal/components/telemetry"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetchSongs(t *testing.T) {
	body := encodeShiftJIS(t, "1\taaa\t3\t5\t8\t11\t-1\t-1\t6\t9\t12\t魔法のたまご\tdj TAKA\n2\tbbb\t1\t\t\t\t\t\t\t\t\tMAX 300\tΩ\n")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "text/plain")
		w.Write(body)
	}))
	defer server.Close()

	tel := telemetry.NewRecorder()
	client := NewClient(ClientOptions{Url: server.URL}, tel)

	result, err := client.FetchSongs(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)
	require.Equal(t, "魔法のたまご", result[0].Name)
	require.Equal(t, "MAX 300", result[1].Name)
	require.Equal(t, "Ω", result[1].Artist)
	require.Len(t, result[1].Charts, 1)

	require.Empty(t, tel.Reports(telemetry.REPORT_BROKEN))
	counts := tel.Reports(telemetry.REPORT_COUNT)
	require.Len(t, counts, 1)
	require.Equal(t, int64(2), counts[0].Count)
}

func TestFetchSongsBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	tel := telemetry.NewRecorder()
	client := NewClient(ClientOptions{Url: server.URL}, tel)

	_, err := client.FetchSongs(context.Background())
	require.Error(t, err)
	require.NotEmpty(t, tel.Reports(telemetry.REPORT_BROKEN))
}
