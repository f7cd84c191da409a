package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mcapelli/chrono/internal/lifecycle"
	"github.com/mcapelli/chrono/internal/models"
	"github.com/mcapelli/chrono/internal/store"
)

// RunTimerTUI runs the interactive timer for an already started block.
func RunTimerTUI(st *store.Store, eng *lifecycle.Engine, block *models.TimeBlock) error {
	p := tea.NewProgram(NewTimerModel(st, eng, block), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(TimerModel); ok {
		if m.completed {
			fmt.Printf("✅ Completed \"%s\" after %s\n", m.block.Title, formatElapsed(m.elapsed))
		} else if m.detached {
			fmt.Printf("⏱️  \"%s\" is still %s (elapsed %s)\n", m.block.Title, m.block.Status, formatElapsed(m.elapsed))
		}
	}
	return nil
}
