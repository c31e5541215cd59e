package profile

import "context"

// Repository persists user profiles.
type Repository interface {
	Get(ctx context.Context, id string) (Profile, bool, error)
	Save(ctx context.Context, profile Profile) error
}
