package link

import (
	"time"

	"github.com/sundayezeilo/linkstore/internal/optional"
)

// Link is a stored short-link record. ShortedURL and OwnerID are fixed at
// creation.
type Link struct {
	ID          int64
	OriginalURL string
	ShortedURL  string
	OwnerID     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateParams is the caller-supplied input for Create.
type CreateParams struct {
	OriginalURL string
}

// Patch lists the fields an update may change. Unset fields are left alone.
type Patch struct {
	OriginalURL optional.Value[string]
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return !p.OriginalURL.Set
}

// ListParams selects a page of links.
type ListParams struct {
	Offset int
	Limit  int
}

// ListResult is one page of links plus the total visible to the caller.
type ListResult struct {
	Items []Link
	Count int64
}
