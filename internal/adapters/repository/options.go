package repository

import "github.com/sankhaXjack/JOB-RECOMANDATION/pkg/logger"

// Option applies a configuration option to the SQLiteStore.
type Option func(*SQLiteStore)

// WithLogger sets the store logger.
func WithLogger(l logger.Logger) Option {
	return func(s *SQLiteStore) {
		if l != nil {
			s.log = l
		}
	}
}

// WithBusyTimeout sets how long SQLite waits on a locked database, in
// milliseconds.
func WithBusyTimeout(ms int) Option {
	return func(s *SQLiteStore) {
		if ms >= 0 {
			s.busyTimeoutMs = ms
		}
	}
}
