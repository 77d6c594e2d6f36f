package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// consoleNotifier prints operation outcomes as single lines, e.g.
//
//	✓ Article added successfully.
//	✗ Failed to save article: title is required, select at least 1 category
type consoleNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func (n *consoleNotifier) Success(_ context.Context, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.w, okStyle.Render("✓ "+msg))
}

func (n *consoleNotifier) Failure(_ context.Context, msg string, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	fmt.Fprintln(n.w, failStyle.Render("✗ "+msg))
}
