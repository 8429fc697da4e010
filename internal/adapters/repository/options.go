package repository

import "os"

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithSchemaValidation toggles JSON Schema validation on Load.
func WithSchemaValidation(enabled bool) Option {
	return func(s *FileStore) {
		s.validate = enabled
	}
}

// WithFileMode sets the permission bits of written snapshots.
func WithFileMode(mode os.FileMode) Option {
	return func(s *FileStore) {
		if mode != 0 {
			s.mode = mode
		}
	}
}
