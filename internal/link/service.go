package link

import (
	"context"
	"errors"
	"strings"

	"github.com/sundayezeilo/linkstore/internal/auth"
	"github.com/sundayezeilo/linkstore/internal/errx"
	"github.com/sundayezeilo/linkstore/shortcode"
)

const (
	DefaultListLimit = 100
	MaxURLLength     = 2048
)

// Service defines the ownership-aware operations on links. Every call takes
// the acting principal explicitly.
type Service interface {
	List(ctx context.Context, p auth.Principal, params ListParams) (ListResult, error)
	Get(ctx context.Context, p auth.Principal, id int64) (Link, error)
	Create(ctx context.Context, p auth.Principal, params CreateParams) (Link, error)
	Update(ctx context.Context, p auth.Principal, id int64, patch Patch) (Link, error)
	Delete(ctx context.Context, p auth.Principal, id int64) error
}

// service implements the Service interface. It holds no mutable state.
type service struct {
	repo    Repository
	encoder shortcode.Encoder
}

// ServiceConfig holds configuration for the service.
type ServiceConfig struct {
	Encoder shortcode.Encoder
}

// NewService creates a new service instance.
func NewService(repo Repository, config *ServiceConfig) Service {
	if config == nil {
		config = &ServiceConfig{}
	}

	enc := config.Encoder
	if enc == nil {
		enc = shortcode.NewBase64()
	}

	return &service{
		repo:    repo,
		encoder: enc,
	}
}

// List returns a page of the links visible to p and the size of that set.
func (s *service) List(ctx context.Context, p auth.Principal, params ListParams) (ListResult, error) {
	const op = "link.service.List"

	filter := scopeFor(p)
	page := normalizePage(params)

	items, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return ListResult{}, errx.Propagate(op, err)
	}

	count, err := s.repo.Count(ctx, filter)
	if err != nil {
		return ListResult{}, errx.Propagate(op, err)
	}

	return ListResult{Items: items, Count: count}, nil
}

func (s *service) Get(ctx context.Context, p auth.Principal, id int64) (Link, error) {
	const op = "link.service.Get"

	link, err := s.authorized(ctx, p, id)
	if err != nil {
		return Link{}, errx.Propagate(op, err)
	}
	return link, nil
}

// Create stores a new link owned by p with its short code derived from the
// URL and the owner id.
func (s *service) Create(ctx context.Context, p auth.Principal, params CreateParams) (Link, error) {
	const op = "link.service.Create"

	if err := validateOriginalURL(params.OriginalURL); err != nil {
		return Link{}, errx.E(op, errx.Invalid, err)
	}

	created, err := s.repo.Create(ctx, Link{
		OriginalURL: params.OriginalURL,
		ShortedURL:  s.encoder.Encode(params.OriginalURL, p.ID),
		OwnerID:     p.ID,
	})
	if err != nil {
		return Link{}, errx.Propagate(op, err)
	}
	return created, nil
}

// Update applies patch to the link. Only the original URL can change.
func (s *service) Update(ctx context.Context, p auth.Principal, id int64, patch Patch) (Link, error) {
	const op = "link.service.Update"

	if patch.OriginalURL.Set {
		if patch.OriginalURL.Null {
			return Link{}, errx.E(op, errx.Invalid, errors.New("original_url cannot be null"))
		}
		if err := validateOriginalURL(patch.OriginalURL.V); err != nil {
			return Link{}, errx.E(op, errx.Invalid, err)
		}
	}

	current, err := s.authorized(ctx, p, id)
	if err != nil {
		return Link{}, errx.Propagate(op, err)
	}

	if patch.IsEmpty() {
		return current, nil
	}

	updated, err := s.repo.UpdateOriginalURL(ctx, id, patch.OriginalURL.V)
	if err != nil {
		return Link{}, errx.Propagate(op, err)
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, p auth.Principal, id int64) error {
	const op = "link.service.Delete"

	if _, err := s.authorized(ctx, p, id); err != nil {
		return errx.Propagate(op, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errx.Propagate(op, err)
	}
	return nil
}

// authorized fetches the link and checks that p may act on it.
func (s *service) authorized(ctx context.Context, p auth.Principal, id int64) (Link, error) {
	const op = "link.service.authorized"

	link, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Link{}, errx.Propagate(op, err)
	}
	if !p.CanAccess(link.OwnerID) {
		return Link{}, errx.E(op, errx.Forbidden, errors.New("not enough permissions"))
	}
	return link, nil
}

func scopeFor(p auth.Principal) Filter {
	if p.IsAdmin {
		return Filter{}
	}
	owner := p.ID
	return Filter{OwnerID: &owner}
}

func normalizePage(params ListParams) Page {
	page := Page{Offset: params.Offset, Limit: params.Limit}
	if page.Offset < 0 {
		page.Offset = 0
	}
	if page.Limit <= 0 {
		page.Limit = DefaultListLimit
	}
	return page
}

func validateOriginalURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return errors.New("original_url cannot be empty")
	}
	if len(rawURL) > MaxURLLength {
		return errors.New("original_url too long (max 2048 characters)")
	}
	return nil
}
