package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/unifind/internal/apperr"
)

const brazil = `[
	{"name":"Universidade de São Paulo","country":"Brazil","alpha_two_code":"BR",
	 "state-province":null,"domains":["usp.br"],"web_pages":["http://www.usp.br/"]},
	{"name":"Universidade Paulista","country":"Brazil","alpha_two_code":"BR",
	 "state-province":"São Paulo","domains":["unip.br"],"web_pages":["http://www.unip.br/"]}
]`

// recorded keeps the last request the test server saw.
type recorded struct {
	mu  sync.Mutex
	req *http.Request
}

func (r *recorded) get() *http.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.req
}

func newServer(t *testing.T, status int, body string) (*httptest.Server, *int32, *recorded) {
	t.Helper()
	var hits int32
	last := &recorded{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		last.mu.Lock()
		last.req = r.Clone(context.Background())
		last.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts, &hits, last
}

func TestSearch_RejectsEmptyCriteriaWithoutHTTP(t *testing.T) {
	ts, hits, _ := newServer(t, http.StatusOK, brazil)
	c := NewClient(ts.URL)

	_, err := c.Search(context.Background(), "  ", "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Zero(t, atomic.LoadInt32(hits))
}

func TestSearch_Success(t *testing.T) {
	ts, hits, rec := newServer(t, http.StatusOK, brazil)
	c := NewClient(ts.URL + "/")

	unis, err := c.Search(context.Background(), " Brazil ", " Paulista")
	require.NoError(t, err)
	last := rec.get()
	require.Len(t, unis, 2)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))

	assert.Equal(t, "/search", last.URL.Path)
	assert.Equal(t, "Brazil", last.URL.Query().Get("country"))
	assert.Equal(t, "Paulista", last.URL.Query().Get("name"))
	assert.NotEmpty(t, last.Header.Get("X-Request-ID"))

	assert.Equal(t, "Universidade de São Paulo", unis[0].Name)
	assert.Nil(t, unis[0].StateProvince)
	require.NotNil(t, unis[1].StateProvince)
	assert.Equal(t, "São Paulo", *unis[1].StateProvince)
	assert.Equal(t, []string{"http://www.unip.br/"}, unis[1].WebPages)
}

func TestSearch_OnlyNonEmptyParams(t *testing.T) {
	ts, _, rec := newServer(t, http.StatusOK, `[]`)
	c := NewClient(ts.URL)

	unis, err := c.Search(context.Background(), "", "Harvard")
	require.NoError(t, err)
	last := rec.get()
	assert.NotNil(t, unis)
	assert.Empty(t, unis)

	_, hasCountry := last.URL.Query()["country"]
	assert.False(t, hasCountry)
	assert.Equal(t, "Harvard", last.URL.Query().Get("name"))
}

func TestSearchURL_Encodes(t *testing.T) {
	c := NewClient("http://example.test")

	u, err := c.SearchURL("United States", "A&M")
	require.NoError(t, err)
	assert.Equal(t, "http://example.test/search?country=United+States&name=A%26M", u)
}

func TestSearch_NonSuccessStatus(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusServiceUnavailable, http.StatusTeapot} {
		ts, _, _ := newServer(t, status, `{"error":"nope"}`)

		_, err := NewClient(ts.URL).Search(context.Background(), "Brazil", "")
		require.Error(t, err)
		assert.Equal(t, apperr.KindNetwork, apperr.KindOf(err), "status %d", status)
	}
}

func TestSearch_TransportFailure(t *testing.T) {
	ts, _, _ := newServer(t, http.StatusOK, brazil)
	url := ts.URL
	ts.Close()

	_, err := NewClient(url).Search(context.Background(), "Brazil", "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNetwork, apperr.KindOf(err))
}

func TestSearch_InvalidJSON(t *testing.T) {
	ts, _, _ := newServer(t, http.StatusOK, `<html>maintenance</html>`)

	_, err := NewClient(ts.URL).Search(context.Background(), "Brazil", "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindDecode, apperr.KindOf(err))
}

func TestSearch_UnexpectedShape(t *testing.T) {
	bodies := []string{
		`{"name":"not an array"}`,
		`[{"name":"USP","country":"Brazil","alpha_two_code":"BR","domains":["usp.br"]}]`,
		`[{"name":"USP","country":"Brazil","alpha_two_code":"BR","domains":"usp.br","web_pages":[]}]`,
		`null`,
	}
	for _, body := range bodies {
		ts, _, _ := newServer(t, http.StatusOK, body)

		_, err := NewClient(ts.URL).Search(context.Background(), "Brazil", "")
		require.Error(t, err, body)
		assert.Equal(t, apperr.KindDecode, apperr.KindOf(err), body)
	}
}

func TestSearch_Cancelled(t *testing.T) {
	ts, _, _ := newServer(t, http.StatusOK, brazil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(ts.URL).Search(ctx, "Brazil", "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNetwork, apperr.KindOf(err))
}

func TestFriendlyMessages(t *testing.T) {
	assert.Equal(t, "university directory temporarily unavailable", statusMessage(503))
	assert.Equal(t, "network error: HTTP 418", statusMessage(418))
}

func TestCheckCriteria(t *testing.T) {
	assert.NoError(t, CheckCriteria("Brazil", ""))
	assert.NoError(t, CheckCriteria("", "Paulista"))
	assert.True(t, apperr.IsKind(CheckCriteria(" ", "\t"), apperr.KindValidation))
}
