package model

import (
	"strings"

	"github.com/jeanpaul/unifind/internal/apperr"
)

// University is one record returned by the directory search. It is never
// persisted.
type University struct {
	Name          string   `json:"name"`
	Country       string   `json:"country"`
	AlphaTwoCode  string   `json:"alpha_two_code"`
	StateProvince *string  `json:"state-province"`
	Domains       []string `json:"domains"`
	WebPages      []string `json:"web_pages"`
}

// PrimaryWebPage returns the first web page as the directory sent it, or ""
// when there is none.
func (u University) PrimaryWebPage() string {
	if len(u.WebPages) == 0 {
		return ""
	}
	return u.WebPages[0]
}

// Favorite is a persisted selection. WebPage is its identity.
type Favorite struct {
	Name    string `json:"name" yaml:"name"`
	WebPage string `json:"web_page" yaml:"web_page"`
}

// NewFavorite builds the favorite for u from its first web page.
func NewFavorite(u University) (Favorite, error) {
	page := u.PrimaryWebPage()
	if strings.TrimSpace(page) == "" {
		return Favorite{}, apperr.Validation("favorite",
			"%q has no valid web page to add to favorites", u.Name)
	}
	return Favorite{Name: u.Name, WebPage: page}, nil
}
