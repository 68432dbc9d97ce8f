package catalog

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
)

// Listener feeds the Store from Postgres LISTEN/NOTIFY so every running
// instance sees admin writes without polling. It holds its own connection:
// LISTEN is per-session and cannot share the database/sql pool.
type Listener struct {
	url   string
	store *Store
}

func NewListener(url string, store *Store) *Listener {
	return &Listener{url: url, store: store}
}

// Run blocks until the context is cancelled, refreshing the store on every
// catalog notification. Connection failures are logged and retried; the
// store keeps serving its last-known snapshot meanwhile.
func (l *Listener) Run(ctx context.Context) {
	for {
		if err := l.listen(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("catalog: listener disconnected: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(5 * time.Second):
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.url)
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		return err
	}

	// the write that triggered a missed notification may predate the LISTEN
	l.store.Refresh()

	for {
		if _, err := conn.WaitForNotification(ctx); err != nil {
			return err
		}
		l.store.Refresh()
	}
}
