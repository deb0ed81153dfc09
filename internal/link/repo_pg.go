package link

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	db "github.com/sundayezeilo/linkstore/internal/db/sqlc"
	"github.com/sundayezeilo/linkstore/internal/errx"
)

// querier is the subset of *db.Queries the repository needs.
type querier interface {
	CreateLink(ctx context.Context, arg db.CreateLinkParams) (db.Link, error)
	GetLink(ctx context.Context, id int64) (db.Link, error)
	ListLinks(ctx context.Context, arg db.ListLinksParams) ([]db.Link, error)
	ListLinksByOwner(ctx context.Context, arg db.ListLinksByOwnerParams) ([]db.Link, error)
	CountLinks(ctx context.Context) (int64, error)
	CountLinksByOwner(ctx context.Context, ownerID int64) (int64, error)
	UpdateLinkOriginalURL(ctx context.Context, arg db.UpdateLinkOriginalURLParams) (db.Link, error)
	DeleteLink(ctx context.Context, id int64) (int64, error)
}

var errNoRowsAffected = errors.New("no rows affected")

type pgRepo struct {
	q querier
}

// NewRepository returns a Repository backed by sqlc queries.
func NewRepository(q querier) Repository {
	return &pgRepo{q: q}
}

func mustTime(ts pgtype.Timestamptz, field string) (time.Time, error) {
	if !ts.Valid {
		return time.Time{}, fmt.Errorf("%s unexpectedly NULL", field)
	}
	return ts.Time, nil
}

func toDomainLink(x db.Link) (Link, error) {
	createdAt, err := mustTime(x.CreatedAt, "created_at")
	if err != nil {
		return Link{}, err
	}
	updatedAt, err := mustTime(x.UpdatedAt, "updated_at")
	if err != nil {
		return Link{}, err
	}

	return Link{
		ID:          x.ID,
		OriginalURL: x.OriginalUrl,
		ShortedURL:  x.ShortedUrl,
		OwnerID:     x.OwnerID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

func toDomainLinks(op string, rows []db.Link) ([]Link, error) {
	links := make([]Link, 0, len(rows))
	for _, row := range rows {
		l, err := toDomainLink(row)
		if err != nil {
			return nil, errx.E(op, errx.Internal, err)
		}
		links = append(links, l)
	}
	return links, nil
}

func mapRepoError(op string, err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return errx.E(op, errx.NotFound, err)

	case isUniqueViolation(err):
		return errx.E(op, errx.Conflict, err)

	default:
		return errx.E(op, errx.Unavailable, err)
	}
}

// clampInt32 keeps page bounds inside the range the queries accept.
func clampInt32(n int) int32 {
	switch {
	case n < 0:
		return 0
	case n > math.MaxInt32:
		return math.MaxInt32
	default:
		return int32(n)
	}
}

func (r *pgRepo) Create(ctx context.Context, link Link) (Link, error) {
	const op = "link.repo.Create"

	row, err := r.q.CreateLink(ctx, db.CreateLinkParams{
		OriginalUrl: link.OriginalURL,
		ShortedUrl:  link.ShortedURL,
		OwnerID:     link.OwnerID,
	})
	if err != nil {
		return Link{}, mapRepoError(op, err)
	}

	created, err := toDomainLink(row)
	if err != nil {
		return Link{}, errx.E(op, errx.Internal, err)
	}
	return created, nil
}

func (r *pgRepo) GetByID(ctx context.Context, id int64) (Link, error) {
	const op = "link.repo.GetByID"

	row, err := r.q.GetLink(ctx, id)
	if err != nil {
		return Link{}, mapRepoError(op, err)
	}

	l, err := toDomainLink(row)
	if err != nil {
		return Link{}, errx.E(op, errx.Internal, err)
	}
	return l, nil
}

func (r *pgRepo) List(ctx context.Context, filter Filter, page Page) ([]Link, error) {
	const op = "link.repo.List"

	var (
		rows []db.Link
		err  error
	)
	if filter.OwnerID != nil {
		rows, err = r.q.ListLinksByOwner(ctx, db.ListLinksByOwnerParams{
			OwnerID: *filter.OwnerID,
			Limit:   clampInt32(page.Limit),
			Offset:  clampInt32(page.Offset),
		})
	} else {
		rows, err = r.q.ListLinks(ctx, db.ListLinksParams{
			Limit:  clampInt32(page.Limit),
			Offset: clampInt32(page.Offset),
		})
	}
	if err != nil {
		return nil, mapRepoError(op, err)
	}

	return toDomainLinks(op, rows)
}

func (r *pgRepo) Count(ctx context.Context, filter Filter) (int64, error) {
	const op = "link.repo.Count"

	var (
		n   int64
		err error
	)
	if filter.OwnerID != nil {
		n, err = r.q.CountLinksByOwner(ctx, *filter.OwnerID)
	} else {
		n, err = r.q.CountLinks(ctx)
	}
	if err != nil {
		return 0, mapRepoError(op, err)
	}
	return n, nil
}

func (r *pgRepo) UpdateOriginalURL(ctx context.Context, id int64, originalURL string) (Link, error) {
	const op = "link.repo.UpdateOriginalURL"

	row, err := r.q.UpdateLinkOriginalURL(ctx, db.UpdateLinkOriginalURLParams{
		ID:          id,
		OriginalUrl: originalURL,
	})
	if err != nil {
		return Link{}, mapRepoError(op, err)
	}

	l, err := toDomainLink(row)
	if err != nil {
		return Link{}, errx.E(op, errx.Internal, err)
	}
	return l, nil
}

func (r *pgRepo) Delete(ctx context.Context, id int64) error {
	const op = "link.repo.Delete"

	n, err := r.q.DeleteLink(ctx, id)
	if err != nil {
		return mapRepoError(op, err)
	}
	if n == 0 {
		return errx.E(op, errx.NotFound, errNoRowsAffected)
	}
	return nil
}
