package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Core palette
	Blue      = lipgloss.Color("#3B82F6")
	LightBlue = lipgloss.Color("#93C5FD")
	DeepBlue  = lipgloss.Color("#1E3A8A")
	Gold      = lipgloss.Color("#F5B700")
	Green     = lipgloss.Color("#22C55E")
	Red       = lipgloss.Color("#EF4444")
	MidGray   = lipgloss.Color("#4B5563")
	LightGray = lipgloss.Color("#9CA3AF")
	White     = lipgloss.Color("#F3F4F6")

	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(DeepBlue).
			Bold(true).
			Padding(0, 1)

	// Inputs
	InputLabelStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Width(10)

	InputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(MidGray).
			Padding(0, 1)

	InputActiveStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Blue).
				Padding(0, 1)

	// Lists
	SelectedTitleStyle = lipgloss.NewStyle().
				Foreground(Gold).
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(Gold).
				PaddingLeft(1)

	ListTitleStyle = lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true)

	DetailBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(LightBlue).
			Padding(0, 1)

	// Status line
	StatusStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Italic(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	ErrorTitleStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(Gold)

	HelpStyle = lipgloss.NewStyle().
			Foreground(MidGray)
)
