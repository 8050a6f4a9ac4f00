package tui

import (
	"github.com/charmbracelet/bubbles/list"

	"github.com/jeanpaul/unifind/internal/model"
)

type universityItem struct {
	u model.University
}

func (i universityItem) Title() string { return i.u.Name }

func (i universityItem) Description() string {
	if i.u.StateProvince != nil && *i.u.StateProvince != "" {
		return i.u.Country + " · " + *i.u.StateProvince
	}
	return i.u.Country
}

func (i universityItem) FilterValue() string { return i.u.Name }

type favoriteItem struct {
	f model.Favorite
}

func (i favoriteItem) Title() string       { return i.f.WebPage }
func (i favoriteItem) Description() string { return "(" + i.f.Name + ")" }
func (i favoriteItem) FilterValue() string { return i.f.WebPage }

// newList builds an unfiltered list; letter keys stay free for screen
// shortcuts.
func newList(title string) list.Model {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = SelectedTitleStyle
	d.Styles.SelectedDesc = SelectedTitleStyle.Foreground(LightGray)

	l := list.New(nil, d, 60, 14)
	l.Title = title
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = ListTitleStyle.MarginLeft(2)
	return l
}

func universityItems(unis []model.University) []list.Item {
	items := make([]list.Item, len(unis))
	for i, u := range unis {
		items[i] = universityItem{u: u}
	}
	return items
}

func favoriteItems(favs []model.Favorite) []list.Item {
	items := make([]list.Item, len(favs))
	for i, f := range favs {
		items[i] = favoriteItem{f: f}
	}
	return items
}
