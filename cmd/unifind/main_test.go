package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/unifind/internal/apperr"
	"github.com/jeanpaul/unifind/internal/kv"
	"github.com/jeanpaul/unifind/internal/model"
)

const directoryBody = `[
	{"name":"Universidade de São Paulo","country":"Brazil","alpha_two_code":"BR",
	 "state-province":null,"domains":["usp.br"],"web_pages":["http://www.usp.br/"]}
]`

type env struct {
	dataDir string
	apiURL  string
}

func setup(t *testing.T) env {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("country") == "Atlantis" {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		_, _ = w.Write([]byte(directoryBody))
	}))
	t.Cleanup(ts.Close)

	return env{dataDir: t.TempDir(), apiURL: ts.URL}
}

func (e env) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errb bytes.Buffer
	base := []string{"--no-color", "--backend", "file", "--data-dir", e.dataDir, "--api-url", e.apiURL}
	err := execute(context.Background(), append(args, base...), &out, &errb)
	return out.String(), errb.String(), err
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, execute(context.Background(), []string{"version"}, &out, &bytes.Buffer{}))
	assert.Contains(t, out.String(), "unifind dev")
}

func TestUnknownCommand(t *testing.T) {
	e := setup(t)
	_, _, err := e.run(t, "nonexistent-command")
	assert.Error(t, err)
}

func TestSearch_Table(t *testing.T) {
	e := setup(t)

	out, _, err := e.run(t, "search", "--country", "Brazil")
	require.NoError(t, err)
	assert.Contains(t, out, "Universidade de São Paulo")
	assert.Contains(t, out, "http://www.usp.br/")
}

func TestSearch_JSON(t *testing.T) {
	e := setup(t)

	out, _, err := e.run(t, "search", "--name", "Paulo", "--json")
	require.NoError(t, err)

	var unis []model.University
	require.NoError(t, json.Unmarshal([]byte(out), &unis))
	require.Len(t, unis, 1)
	assert.Equal(t, "BR", unis[0].AlphaTwoCode)
}

func TestSearch_NoResults(t *testing.T) {
	e := setup(t)

	out, _, err := e.run(t, "search", "--country", "Atlantis")
	require.NoError(t, err)
	assert.Contains(t, out, "No universities found")
}

func TestSearch_RequiresCriteria(t *testing.T) {
	e := setup(t)

	_, stderr, err := e.run(t, "search")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	assert.Contains(t, stderr, "[ERROR] Attention:")
}

func TestFavorites_AddListRemove(t *testing.T) {
	e := setup(t)

	out, _, err := e.run(t, "favorites", "add", "--name", "USP", "--web-page", "usp.br")
	require.NoError(t, err)
	assert.Contains(t, out, `[OK] "USP" added to favorites.`)

	_, stderr, err := e.run(t, "favorites", "add", "--name", "USP2", "--web-page", "usp.br")
	require.NoError(t, err)
	assert.Contains(t, stderr, "already in your favorites")

	_, err = e.runOK(t, "favorites", "add", "--name", "UFRJ", "--web-page", "ufrj.br")
	require.NoError(t, err)

	out, _, err = e.run(t, "favorites", "list", "--json")
	require.NoError(t, err)
	var favs []model.Favorite
	require.NoError(t, json.Unmarshal([]byte(out), &favs))
	assert.Equal(t, []model.Favorite{{Name: "USP", WebPage: "usp.br"}, {Name: "UFRJ", WebPage: "ufrj.br"}}, favs)

	out, _, err = e.run(t, "favorites", "remove", "--web-page", "usp.br")
	require.NoError(t, err)
	assert.Contains(t, out, "removed from favorites")

	_, stderr, err = e.run(t, "favorites", "remove", "--web-page", "usp.br")
	require.NoError(t, err)
	assert.Contains(t, stderr, "No favorite with web page")

	// The list lives under the namespaced key in the data dir.
	store, err := kv.NewFile(e.dataDir)
	require.NoError(t, err)
	raw, ok, err := store.Get(context.Background(), "unifind:favorite_universities")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"name":"UFRJ","web_page":"ufrj.br"}]`, string(raw))
}

func (e env) runOK(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := e.run(t, args...)
	return out, err
}

func TestFavorites_RemoveWithSameSpacedWebPage(t *testing.T) {
	e := setup(t)

	_, err := e.runOK(t, "favorites", "add", "--name", "USP", "--web-page", " usp.br ")
	require.NoError(t, err)

	out, err := e.runOK(t, "favorites", "remove", "--web-page", " usp.br ")
	require.NoError(t, err)
	assert.Contains(t, out, "removed from favorites")
}

func TestFavorites_ListEmpty(t *testing.T) {
	e := setup(t)

	out, _, err := e.run(t, "favorites", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No favorite universities yet.")
}

func TestFavorites_AddRejectsBlankWebPage(t *testing.T) {
	e := setup(t)

	_, _, err := e.run(t, "favorites", "add", "--name", "X", "--web-page", "  ")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestFavorites_ExportImport(t *testing.T) {
	e := setup(t)
	for _, page := range []string{"usp.br", "ufrj.br"} {
		_, err := e.runOK(t, "favorites", "add", "--name", page, "--web-page", page)
		require.NoError(t, err)
	}

	path := filepath.Join(t.TempDir(), "favorites.yaml")
	out, err := e.runOK(t, "favorites", "export", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 favorites")

	out, err = e.runOK(t, "favorites", "export", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"web_page": "ufrj.br"`)

	other := setup(t)
	out, err = other.runOK(t, "favorites", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 of 2 favorites.")

	out, err = other.runOK(t, "favorites", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 0 of 2 favorites.")
}

func TestDoctor(t *testing.T) {
	e := setup(t)

	out, _, err := e.run(t, "doctor")
	require.NoError(t, err)
	assert.Contains(t, out, "directory")
	assert.Contains(t, out, "storage")
	assert.Contains(t, out, "All checks passed.")
}

func TestDoctor_UnreachableDirectory(t *testing.T) {
	e := setup(t)
	ts := httptest.NewServer(http.NotFoundHandler())
	e.apiURL = ts.URL
	ts.Close()

	out, _, err := e.run(t, "doctor")
	require.Error(t, err)
	assert.Contains(t, out, "[FAIL]")
	assert.Contains(t, err.Error(), "1 of 2 checks failed")
}

func TestInvalidConfig(t *testing.T) {
	e := setup(t)
	t.Setenv("UNIFIND_LOG_LEVEL", "loud")

	_, stderr, err := e.run(t, "favorites", "list")
	require.Error(t, err)
	assert.Contains(t, stderr, "log.level")
}
