package link

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sundayezeilo/linkstore/internal/errx"
)

var errLinkNotFound = errors.New("link not found")

// memoryRepo keeps links in insertion order. Ids start at 1 and are never
// reused.
type memoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]int
	links  []Link
	now    func() time.Time
}

// NewMemoryRepository returns a Repository that holds links in process
// memory. It is safe for concurrent use.
func NewMemoryRepository() Repository {
	return &memoryRepo{
		nextID: 1,
		byID:   make(map[int64]int),
		now:    time.Now,
	}
}

func (r *memoryRepo) Create(ctx context.Context, link Link) (Link, error) {
	const op = "link.memory.Create"

	if err := ctx.Err(); err != nil {
		return Link{}, errx.E(op, errx.Unavailable, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	link.ID = r.nextID
	link.CreatedAt = now
	link.UpdatedAt = now
	r.nextID++

	r.byID[link.ID] = len(r.links)
	r.links = append(r.links, link)
	return link, nil
}

func (r *memoryRepo) GetByID(ctx context.Context, id int64) (Link, error) {
	const op = "link.memory.GetByID"

	if err := ctx.Err(); err != nil {
		return Link{}, errx.E(op, errx.Unavailable, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return Link{}, errx.E(op, errx.NotFound, errLinkNotFound)
	}
	return r.links[idx], nil
}

func (r *memoryRepo) List(ctx context.Context, filter Filter, page Page) ([]Link, error) {
	const op = "link.memory.List"

	if err := ctx.Err(); err != nil {
		return nil, errx.E(op, errx.Unavailable, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Link{}
	skipped := 0
	for _, l := range r.links {
		if len(out) >= page.Limit {
			break
		}
		if !filter.matches(l) {
			continue
		}
		if skipped < page.Offset {
			skipped++
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *memoryRepo) Count(ctx context.Context, filter Filter) (int64, error) {
	const op = "link.memory.Count"

	if err := ctx.Err(); err != nil {
		return 0, errx.E(op, errx.Unavailable, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, l := range r.links {
		if filter.matches(l) {
			n++
		}
	}
	return n, nil
}

func (r *memoryRepo) UpdateOriginalURL(ctx context.Context, id int64, originalURL string) (Link, error) {
	const op = "link.memory.UpdateOriginalURL"

	if err := ctx.Err(); err != nil {
		return Link{}, errx.E(op, errx.Unavailable, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.byID[id]
	if !ok {
		return Link{}, errx.E(op, errx.NotFound, errLinkNotFound)
	}

	l := &r.links[idx]
	if l.OriginalURL != originalURL {
		l.OriginalURL = originalURL
		l.UpdatedAt = r.now().UTC()
	}
	return *l, nil
}

func (r *memoryRepo) Delete(ctx context.Context, id int64) error {
	const op = "link.memory.Delete"

	if err := ctx.Err(); err != nil {
		return errx.E(op, errx.Unavailable, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.byID[id]
	if !ok {
		return errx.E(op, errx.NotFound, errLinkNotFound)
	}

	r.links = append(r.links[:idx], r.links[idx+1:]...)
	delete(r.byID, id)
	for i := idx; i < len(r.links); i++ {
		r.byID[r.links[i].ID] = i
	}
	return nil
}

func (f Filter) matches(l Link) bool {
	return f.OwnerID == nil || *f.OwnerID == l.OwnerID
}
