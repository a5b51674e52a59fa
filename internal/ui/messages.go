package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/swipe/internal/deck"
	"github.com/olivier-w/swipe/internal/media"
)

// frameMsg drives one flush of the animation frame queue.
type frameMsg time.Time

// slideDecodedMsg reports one finished decode from the loader's workers.
type slideDecodedMsg media.Decoded

// loadDoneMsg arrives once every slide has been attempted.
type loadDoneMsg struct {
	deck *deck.Deck
	err  error
}

func frameCmd(fps int) tea.Cmd {
	if fps < 1 {
		fps = 60
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
