package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/unifind/internal/apperr"
)

func TestNewFavorite_UsesFirstWebPage(t *testing.T) {
	u := University{Name: "Universidade de São Paulo", WebPages: []string{" http://www.usp.br/ ", "http://usp.br"}}

	fav, err := NewFavorite(u)
	require.NoError(t, err)
	assert.Equal(t, Favorite{Name: "Universidade de São Paulo", WebPage: " http://www.usp.br/ "}, fav)
}

func TestNewFavorite_RejectsMissingWebPage(t *testing.T) {
	for _, pages := range [][]string{nil, {}, {""}, {"   ", "http://second.example"}} {
		_, err := NewFavorite(University{Name: "Nowhere", WebPages: pages})
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		assert.Contains(t, err.Error(), "Nowhere")
	}
}

func TestUniversity_DecodesDirectoryShape(t *testing.T) {
	raw := `{"name":"Universidade Federal do Rio de Janeiro","country":"Brazil","alpha_two_code":"BR",
		"state-province":null,"domains":["ufrj.br"],"web_pages":["http://www.ufrj.br/"]}`

	var u University
	require.NoError(t, json.Unmarshal([]byte(raw), &u))
	assert.Equal(t, "BR", u.AlphaTwoCode)
	assert.Nil(t, u.StateProvince)
	assert.Equal(t, "http://www.ufrj.br/", u.PrimaryWebPage())
}

func TestFavorite_WireNames(t *testing.T) {
	b, err := json.Marshal(Favorite{Name: "USP", WebPage: "usp.br"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"USP","web_page":"usp.br"}`, string(b))
}
