package claim

import (
	"context"
	"errors"
	"time"

	vo "stepsign/internal/domain/claim/valueobjects"
)

var (
	// ErrNotFound is returned when no claim exists for the given ID.
	ErrNotFound = errors.New("claim not found")

	// ErrDailyLimitExceeded is returned by CreateWithDailyLimit when the
	// wallet already holds the maximum number of claims for the window.
	ErrDailyLimitExceeded = errors.New("daily claim limit exceeded")

	// ErrStatusConflict is returned by UpdateStatus when the claim is no
	// longer in the expected status, meaning another caller transitioned
	// it first.
	ErrStatusConflict = errors.New("claim status conflict")
)

type Repository interface {
	// CreateWithDailyLimit persists a new claim, but only if the wallet has
	// created fewer than maxPerDay claims since the given instant. The count
	// and the insert run in one transaction so concurrent submissions cannot
	// both slip under the limit.
	CreateWithDailyLimit(ctx context.Context, c *Claim, maxPerDay int, since time.Time) error

	GetByID(ctx context.Context, id uint) (*Claim, error)

	// ListPending returns pending claims oldest-first, the admin review order.
	ListPending(ctx context.Context) ([]*Claim, error)

	// ListByWallet returns the wallet's claims newest-first.
	ListByWallet(ctx context.Context, wallet string) ([]*Claim, error)

	CountByWalletSince(ctx context.Context, wallet string, since time.Time) (int64, error)

	// UpdateStatus transitions a claim from the expected status to the next
	// one with a conditional update. txDigest and the completion timestamp
	// are recorded only when next is completed.
	UpdateStatus(ctx context.Context, id uint, expected, next vo.ClaimStatus, txDigest *string) error
}
