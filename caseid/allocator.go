package caseid

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrExhausted is returned when neither the standard-length attempts nor the
// fallback candidate could be verified free. With a keyspace of 32^10 this
// indicates something is badly wrong with the case population, not bad luck.
var ErrExhausted = errors.New("case ID keyspace exhausted")

// ExistenceChecker reports whether a candidate display ID is already taken,
// globally. The case database satisfies this; tests inject fakes.
type ExistenceChecker interface {
	CaseIDExists(ctx context.Context, caseID string) (bool, error)
}

// Allocation pairs the internal storage key with the display ID handed to
// moderators
type Allocation struct {
	InternalID string
	CaseID     string
}

// Allocator mints verified-unique case ID pairs. The existence pre-check and
// the eventual insert are not one atomic step, so the caller still retries on
// a duplicate-key write error; the unique index is the final backstop.
type Allocator struct {
	Checker     ExistenceChecker
	MaxAttempts int
}

// NewAllocator returns an allocator with the standard retry budget
func NewAllocator(checker ExistenceChecker) *Allocator {
	return &Allocator{Checker: checker, MaxAttempts: 50}
}

// Allocate generates candidates at the standard length until one is free or
// the budget runs out, then tries a single longer fallback candidate. Store
// errors from the existence check propagate unchanged.
func (a *Allocator) Allocate(ctx context.Context) (Allocation, error) {
	for attempts := 0; attempts < a.MaxAttempts; attempts++ {
		if err := ctx.Err(); err != nil {
			return Allocation{}, err
		}

		candidate := Generate(DisplayLength)
		exists, err := a.Checker.CaseIDExists(ctx, candidate)
		if err != nil {
			return Allocation{}, err
		}
		if !exists {
			return Allocation{InternalID: uuid.NewString(), CaseID: candidate}, nil
		}
	}

	// 50 straight collisions means the standard keyspace is saturated beyond
	// anything the math predicts; log it and fall back to a longer ID, still
	// verified once before use.
	zap.S().Warnw("case ID retry budget exhausted, falling back to longer ID",
		"attempts", a.MaxAttempts,
	)

	candidate := Generate(FallbackLength)
	exists, err := a.Checker.CaseIDExists(ctx, candidate)
	if err != nil {
		return Allocation{}, err
	}
	if exists {
		return Allocation{}, ErrExhausted
	}
	return Allocation{InternalID: uuid.NewString(), CaseID: candidate}, nil
}
