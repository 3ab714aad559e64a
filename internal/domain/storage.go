package domain

import "context"

// ObjectStore is a remote bucket scoped to a single target's bucket and
// folder prefix. Names are bare file names; the key layout under the
// prefix is the store's concern.
type ObjectStore interface {
	// List returns the names of every object under the target's prefix,
	// fully paginated, with the prefix segment stripped.
	List(ctx context.Context) ([]string, error)

	// Upload streams the file at localPath to the object named name,
	// overwriting any existing object.
	Upload(ctx context.Context, localPath string, name string) error

	// Delete removes the object named name. Deleting an absent object
	// is a success.
	Delete(ctx context.Context, name string) error

	// Ping performs a minimal authenticated call against the bucket
	// without reading or writing any object.
	Ping(ctx context.Context) error
}
