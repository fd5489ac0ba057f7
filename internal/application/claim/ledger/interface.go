// Package ledger defines the claim service's port to the external token
// ledger. The core depends only on this contract; the Sui implementation
// lives in infrastructure and is mocked entirely in tests.
package ledger

import "context"

// Gateway mints STEP tokens and executes pre-signed transactions against
// the ledger network. Amounts cross this boundary in display units
// (1 STEP = 1,000,000 base units); conversion happens at the call site.
//
// Every method call carries externally-imposed latency. Implementations
// must apply a request timeout and report timeouts as failures; a timed-out
// mint is never a success.
type Gateway interface {
	// MintTokens mints the given display-unit amount to the recipient using
	// the admin signing key and returns the transaction digest. Fails fast
	// when no admin key is configured, degrading the system to
	// manual-approval-only.
	MintTokens(ctx context.Context, recipient string, amount float64) (string, error)

	// ExecuteTransaction submits a user-signed transaction payload and
	// returns the transaction digest.
	ExecuteTransaction(ctx context.Context, signedTxBase64 string) (string, error)

	// GetBalance returns the recipient's STEP balance in display units.
	GetBalance(ctx context.Context, owner string) (float64, error)
}
