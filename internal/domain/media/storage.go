package media

import "context"

// Storage keeps uploaded files and returns the public path they are served from.
type Storage interface {
	Put(ctx context.Context, upload Upload) (string, error)
	Delete(ctx context.Context, path string) error
}
