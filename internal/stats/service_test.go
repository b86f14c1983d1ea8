package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/storerate/storerate-backend/pkg/enums"
	pkgerrors "github.com/storerate/storerate-backend/pkg/errors"
)

type stubCounter struct {
	value int64
	err   error
}

func (s stubCounter) CountByRole(ctx context.Context, role enums.Role) (int64, error) {
	return s.value, s.err
}

func (s stubCounter) Count(ctx context.Context) (int64, error) {
	return s.value, s.err
}

func TestTotalsAggregatesCounts(t *testing.T) {
	svc, err := NewService(ServiceParams{
		UserRepo:   stubCounter{value: 3},
		StoreRepo:  stubCounter{value: 2},
		RatingRepo: stubCounter{value: 7},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	totals, err := svc.Totals(context.Background())
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals.Users != 3 || totals.Stores != 2 || totals.Ratings != 7 {
		t.Fatalf("unexpected totals %+v", totals)
	}
}

func TestTotalsWrapsRepoFailures(t *testing.T) {
	svc, err := NewService(ServiceParams{
		UserRepo:   stubCounter{err: errors.New("boom")},
		StoreRepo:  stubCounter{},
		RatingRepo: stubCounter{},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Totals(context.Background())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
}
