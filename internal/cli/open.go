package cli

import (
	"context"
	"time"

	"github.com/dshills/seqstorm/internal/backend"
	"github.com/dshills/seqstorm/internal/config"
	"github.com/dshills/seqstorm/internal/engine"
	"github.com/dshills/seqstorm/internal/event"
	"github.com/dshills/seqstorm/internal/session"
)

// openSession builds a fully wired session from settings: engine options,
// logger, event bus, and the backend mirror channel when one is
// configured. A backend that cannot be reached is logged and skipped; the
// editor works without it.
func openSession(ctx context.Context, cfg config.Config, path string) (*session.Session, error) {
	log, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	notifier := backend.Notifier(backend.NopNotifier{})
	if cfg.Backend.URL != "" {
		client, err := backend.Dial(ctx, cfg.Backend.URL,
			backend.WithQueueSize(cfg.Backend.QueueSize),
			backend.WithWriteTimeout(time.Duration(cfg.Backend.WriteTimeoutSeconds)*time.Second),
		)
		if err != nil {
			log.Warn("backend unreachable, editing locally: %v", err)
		} else {
			notifier = client
		}
	}

	engineOpts := []engine.Option{
		engine.WithMaxUndoEntries(cfg.Editor.MaxUndoEntries),
		engine.WithCircular(cfg.Editor.Circular),
	}
	if cfg.Editor.ReadOnly {
		engineOpts = append(engineOpts, engine.WithReadOnly())
	}

	return session.OpenFile(ctx, path,
		session.WithBus(event.NewBus()),
		session.WithNotifier(notifier),
		session.WithLogger(log),
		session.WithEngineOptions(engineOpts...),
	)
}
