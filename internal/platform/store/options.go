package store

import "storefront/internal/platform/logger"

// Option adjusts the Store before backends open
type Option func(*Store) error

// WithLogger replaces the logger handed to backend observers
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}
