package ui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	Background lipgloss.Color
	Surface    lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	AccentAlt  lipgloss.Color
	Border     lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	CellYoung  lipgloss.Color
	CellOld    lipgloss.Color
	CellFade   lipgloss.Color
	Cursor     lipgloss.Color
}

var palettes = map[string]palette{
	"catppuccin": {
		Background: lipgloss.Color("#1e1e2e"),
		Surface:    lipgloss.Color("#313244"),
		Text:       lipgloss.Color("#cdd6f4"),
		Muted:      lipgloss.Color("#a6adc8"),
		Accent:     lipgloss.Color("#cba6f7"),
		AccentAlt:  lipgloss.Color("#f38ba8"),
		Border:     lipgloss.Color("#585b70"),
		Success:    lipgloss.Color("#94e2d5"),
		Warning:    lipgloss.Color("#f9e2af"),
		CellYoung:  lipgloss.Color("#94e2d5"),
		CellOld:    lipgloss.Color("#cba6f7"),
		CellFade:   lipgloss.Color("#45475a"),
		Cursor:     lipgloss.Color("#f38ba8"),
	},
	"dracula": {
		Background: lipgloss.Color("#282a36"),
		Surface:    lipgloss.Color("#343746"),
		Text:       lipgloss.Color("#f8f8f2"),
		Muted:      lipgloss.Color("#6272a4"),
		Accent:     lipgloss.Color("#ff79c6"),
		AccentAlt:  lipgloss.Color("#bd93f9"),
		Border:     lipgloss.Color("#44475a"),
		Success:    lipgloss.Color("#50fa7b"),
		Warning:    lipgloss.Color("#f1fa8c"),
		CellYoung:  lipgloss.Color("#50fa7b"),
		CellOld:    lipgloss.Color("#bd93f9"),
		CellFade:   lipgloss.Color("#3c4053"),
		Cursor:     lipgloss.Color("#ff79c6"),
	},
	"gruvbox": {
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Text:       lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#a89984"),
		Accent:     lipgloss.Color("#fabd2f"),
		AccentAlt:  lipgloss.Color("#d3869b"),
		Border:     lipgloss.Color("#665c54"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fe8019"),
		CellYoung:  lipgloss.Color("#b8bb26"),
		CellOld:    lipgloss.Color("#fabd2f"),
		CellFade:   lipgloss.Color("#504945"),
		Cursor:     lipgloss.Color("#d3869b"),
	},
	"solarized_dark": {
		Background: lipgloss.Color("#002b36"),
		Surface:    lipgloss.Color("#073642"),
		Text:       lipgloss.Color("#fdf6e3"),
		Muted:      lipgloss.Color("#93a1a1"),
		Accent:     lipgloss.Color("#b58900"),
		AccentAlt:  lipgloss.Color("#268bd2"),
		Border:     lipgloss.Color("#586e75"),
		Success:    lipgloss.Color("#859900"),
		Warning:    lipgloss.Color("#cb4b16"),
		CellYoung:  lipgloss.Color("#859900"),
		CellOld:    lipgloss.Color("#268bd2"),
		CellFade:   lipgloss.Color("#0a3a45"),
		Cursor:     lipgloss.Color("#cb4b16"),
	},
}

func paletteFor(name string) palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes["catppuccin"]
}

func themeNames() []string {
	names := make([]string, 0, len(palettes))
	for k := range palettes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func nextThemeName(current string, step int) string {
	names := themeNames()
	if len(names) == 0 {
		return current
	}
	idx := 0
	for i, name := range names {
		if name == current {
			idx = i
			break
		}
	}
	idx = (idx + step) % len(names)
	if idx < 0 {
		idx += len(names)
	}
	return names[idx]
}

// boardStyles caches the lipgloss styles the board view renders with.
type boardStyles struct {
	title     lipgloss.Style
	status    lipgloss.Style
	muted     lipgloss.Style
	warn      lipgloss.Style
	border    lipgloss.Style
	cellDead  lipgloss.Style
	cellYoung lipgloss.Style
	cellOld   lipgloss.Style
	cellFade  lipgloss.Style
	cursor    lipgloss.Style
}

func stylesFor(name string) boardStyles {
	p := paletteFor(name)
	return boardStyles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		status:    lipgloss.NewStyle().Foreground(p.Text),
		muted:     lipgloss.NewStyle().Foreground(p.Muted),
		warn:      lipgloss.NewStyle().Foreground(p.Warning),
		border:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border),
		cellDead:  lipgloss.NewStyle().Foreground(p.Surface),
		cellYoung: lipgloss.NewStyle().Foreground(p.CellYoung),
		cellOld:   lipgloss.NewStyle().Foreground(p.CellOld),
		cellFade:  lipgloss.NewStyle().Foreground(p.CellFade),
		cursor:    lipgloss.NewStyle().Foreground(p.Cursor).Bold(true),
	}
}
