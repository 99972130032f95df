package queries

import (
	"context"

	"ntzs-issuer/internal/pkg/errs"
	"ntzs-issuer/internal/pkg/jwt"

	"github.com/google/uuid"
)

var ErrDepositAccessDenied = errs.New("deposit does not belong to the requesting user")

type DepositQueries interface {
	GetByID(ctx context.Context, actor uuid.UUID, role string, id uuid.UUID) (*DepositView, error)
	// GetByIDSystem skips the ownership check; for internal call sites such
	// as idempotent replays.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*DepositView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*DepositListItem, error)
}

type DepositViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*DepositView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*DepositListItem, error)
}

type depositQueriesImpl struct {
	repo DepositViewRepo
}

func NewDepositQueries(repo DepositViewRepo) DepositQueries {
	return &depositQueriesImpl{repo: repo}
}

// GetByID hides other users' deposits from regular callers; operators and
// admins can inspect any deposit.
func (q *depositQueriesImpl) GetByID(ctx context.Context, actor uuid.UUID, role string, id uuid.UUID) (*DepositView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == jwt.RoleUser && view.UserID != actor {
		return nil, errs.Mark(errs.New("access denied"), ErrDepositAccessDenied)
	}
	return view, nil
}

func (q *depositQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*DepositView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *depositQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*DepositListItem, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return q.repo.FindByUserID(ctx, userID, int32(limit))
}
