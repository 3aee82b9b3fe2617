package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapscope/internal/chart"
)

// feedWatcher is the optional blocking side of a FeedSource. When the
// configured feed implements it, Run keeps a watch goroutine pushing
// payloads into the program.
type feedWatcher interface {
	Watch(ctx context.Context, send func(*chart.Data)) error
}

// Run starts the dashboard and blocks until the user quits or the
// context is cancelled.
func Run(ctx context.Context, deps Deps) error {
	m := New(deps)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	eg, egctx := errgroup.WithContext(ctx)
	runCtx, stop := context.WithCancel(egctx)

	if fw, ok := deps.Feed.(feedWatcher); ok {
		eg.Go(func() error {
			return fw.Watch(runCtx, func(d *chart.Data) {
				p.Send(DataMsg{Data: d})
			})
		})
	}

	eg.Go(func() error {
		defer stop()
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("dashboard terminated: %w", err)
		}
		return nil
	})

	// Stops the program when the parent context goes away; after a
	// normal quit the Quit call is a no-op.
	eg.Go(func() error {
		<-runCtx.Done()
		p.Quit()
		return nil
	})

	return eg.Wait()
}
