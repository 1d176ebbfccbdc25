package forest

import (
	"context"
	"time"
)

// TreeRepository provides read access to the planted forest.
type TreeRepository interface {
	List(ctx context.Context) ([]Tree, error)
	ListByStartDay(ctx context.Context, day time.Time) ([]Tree, error)
	Count(ctx context.Context) (int, error)
}
