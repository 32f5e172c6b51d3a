package render

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/seqstorm/internal/session"
)

// App is the interactive terminal viewer: it owns the screen, drives the
// event loop, and redraws after every change.
type App struct {
	screen tcell.Screen
	view   *View
	sess   *session.Session
}

// NewApp creates an interactive viewer for the session. screen may be a
// real terminal or a simulation screen.
func NewApp(screen tcell.Screen, sess *session.Session, opts Options) *App {
	return &App{
		screen: screen,
		view:   NewView(sess.Engine(), opts),
		sess:   sess,
	}
}

// Run drives the event loop until the user quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	if err := a.screen.Init(); err != nil {
		return err
	}
	defer a.screen.Fini()

	a.view.Draw(a.screen)
	events := make(chan tcell.Event, 16)
	go a.screen.ChannelEvents(events, ctx.Done())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if quit := a.handle(ctx, ev); quit {
				return nil
			}
			a.view.Draw(a.screen)
		}
	}
}

// handle processes one terminal event. Returns true to quit.
func (a *App) handle(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyUp:
			a.view.ScrollBy(-1)
		case tcell.KeyDown:
			a.view.ScrollBy(1)
		case tcell.KeyPgUp:
			a.view.ScrollBy(-5)
		case tcell.KeyPgDn:
			a.view.ScrollBy(5)
		case tcell.KeyHome:
			a.view.ScrollTo(0)
		case tcell.KeyEnd:
			a.view.ScrollTo(a.sess.Engine().Len())
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true
			case 'u':
				_, _ = a.sess.Undo(ctx)
			case 'r':
				_, _ = a.sess.Redo(ctx)
			case 'x':
				_, _ = a.sess.DeleteSelection(ctx)
			}
		}
	}
	return false
}
