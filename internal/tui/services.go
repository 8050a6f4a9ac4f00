package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeanpaul/unifind/internal/favorites"
	"github.com/jeanpaul/unifind/internal/model"
)

// Searcher is satisfied by *search.Client.
type Searcher interface {
	Search(ctx context.Context, country, name string) ([]model.University, error)
}

// FavoritesService is satisfied by *favorites.Store.
type FavoritesService interface {
	List(ctx context.Context) ([]model.Favorite, error)
	Add(ctx context.Context, candidate model.Favorite) (favorites.AddOutcome, error)
	Remove(ctx context.Context, target model.Favorite) (favorites.RemoveOutcome, error)
}

type searchDoneMsg struct {
	results []model.University
	err     error
}

type favoriteAddedMsg struct {
	fav     model.Favorite
	outcome favorites.AddOutcome
	err     error
}

type favoritesLoadedMsg struct {
	favs []model.Favorite
	err  error
}

type favoriteRemovedMsg struct {
	fav     model.Favorite
	outcome favorites.RemoveOutcome
	err     error
}

func searchCmd(ctx context.Context, s Searcher, country, name string) tea.Cmd {
	return func() tea.Msg {
		results, err := s.Search(ctx, country, name)
		return searchDoneMsg{results: results, err: err}
	}
}

func addFavoriteCmd(ctx context.Context, f FavoritesService, fav model.Favorite) tea.Cmd {
	return func() tea.Msg {
		outcome, err := f.Add(ctx, fav)
		return favoriteAddedMsg{fav: fav, outcome: outcome, err: err}
	}
}

func loadFavoritesCmd(ctx context.Context, f FavoritesService) tea.Cmd {
	return func() tea.Msg {
		favs, err := f.List(ctx)
		return favoritesLoadedMsg{favs: favs, err: err}
	}
}

func removeFavoriteCmd(ctx context.Context, f FavoritesService, fav model.Favorite) tea.Cmd {
	return func() tea.Msg {
		outcome, err := f.Remove(ctx, fav)
		return favoriteRemovedMsg{fav: fav, outcome: outcome, err: err}
	}
}
