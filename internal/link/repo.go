package link

import "context"

// Filter narrows a query. A nil OwnerID matches every link.
type Filter struct {
	OwnerID *int64
}

// Page is a normalized offset and limit.
type Page struct {
	Offset int
	Limit  int
}

// Repository defines the persistence operations for Link entities. Lookups
// of a missing id return an errx.NotFound error; store failures return
// errx.Unavailable.
type Repository interface {
	Create(ctx context.Context, link Link) (Link, error)
	GetByID(ctx context.Context, id int64) (Link, error)
	List(ctx context.Context, filter Filter, page Page) ([]Link, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	UpdateOriginalURL(ctx context.Context, id int64, originalURL string) (Link, error)
	Delete(ctx context.Context, id int64) error
}
