package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sworgkh/game-of-life-studio/internal/store"
	"github.com/sworgkh/game-of-life-studio/internal/util"
)

// Run boots the TUI program and blocks until it exits.
func Run(ctx context.Context, db *store.DB, cfg util.Config, version string) error {
	m := initialModel(ctx, db, cfg, version)
	program := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
