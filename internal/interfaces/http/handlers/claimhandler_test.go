package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stepsign/internal/interfaces/http/handlers/testutil"
)

func submitBody(sessionID uint) map[string]interface{} {
	return map[string]interface{}{
		"session_id":  sessionID,
		"user_wallet": testWallet,
	}
}

type submittedClaim struct {
	Claim struct {
		ID           uint   `json:"id"`
		Status       string `json:"status"`
		RewardAmount int64  `json:"reward_amount"`
	} `json:"claim"`
	Minted    bool   `json:"minted"`
	TxDigest  string `json:"tx_digest"`
	MintError string `json:"mint_error"`
}

func TestClaimHandler_SubmitClaim(t *testing.T) {
	t.Run("auto-mint success returns 201 with digest", func(t *testing.T) {
		env := newTestEnv(t)
		env.gateway.mintDigest = "autoDigest"
		s := env.seedSession(t, 500)

		c, w := testutil.NewTestContext(http.MethodPost, "/api/claims", submitBody(s.ID()))
		env.claimHandler.SubmitClaim(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		assert.True(t, resp.Success)

		var got submittedClaim
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		assert.True(t, got.Minted)
		assert.Equal(t, "autoDigest", got.TxDigest)
		assert.Equal(t, "completed", got.Claim.Status)
		assert.Equal(t, int64(500_000_000), got.Claim.RewardAmount)
	})

	t.Run("mint failure still returns 201 with pending claim", func(t *testing.T) {
		env := newTestEnv(t)
		env.gateway.mintErr = errors.New("rpc down")
		s := env.seedSession(t, 500)

		c, w := testutil.NewTestContext(http.MethodPost, "/api/claims", submitBody(s.ID()))
		env.claimHandler.SubmitClaim(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		var got submittedClaim
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		assert.False(t, got.Minted)
		assert.Equal(t, "pending", got.Claim.Status)
		assert.NotEmpty(t, got.MintError)
	})

	t.Run("missing body fields return 400", func(t *testing.T) {
		env := newTestEnv(t)
		c, w := testutil.NewTestContext(http.MethodPost, "/api/claims", map[string]interface{}{
			"session_id": 1,
		})

		env.claimHandler.SubmitClaim(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed wallet address returns 400", func(t *testing.T) {
		env := newTestEnv(t)
		c, w := testutil.NewTestContext(http.MethodPost, "/api/claims", map[string]interface{}{
			"session_id":  1,
			"user_wallet": "not-a-wallet",
		})

		env.claimHandler.SubmitClaim(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown session returns 404", func(t *testing.T) {
		env := newTestEnv(t)
		c, w := testutil.NewTestContext(http.MethodPost, "/api/claims", submitBody(42))

		env.claimHandler.SubmitClaim(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("below minimum steps returns 400", func(t *testing.T) {
		env := newTestEnv(t)
		s := env.seedSession(t, 5)

		c, w := testutil.NewTestContext(http.MethodPost, "/api/claims", submitBody(s.ID()))
		env.claimHandler.SubmitClaim(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, "validation_error", resp.Error.Type)
	})

	t.Run("daily limit returns 429", func(t *testing.T) {
		env := newTestEnv(t)
		env.gateway.mintDigest = "digest"

		for i := 0; i < 3; i++ {
			s := env.seedSession(t, 500)
			c, w := testutil.NewTestContext(http.MethodPost, "/api/claims", submitBody(s.ID()))
			env.claimHandler.SubmitClaim(c)
			require.Equal(t, http.StatusCreated, w.Code)
		}

		s := env.seedSession(t, 500)
		c, w := testutil.NewTestContext(http.MethodPost, "/api/claims", submitBody(s.ID()))
		env.claimHandler.SubmitClaim(c)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})
}

func TestClaimHandler_ApproveClaim(t *testing.T) {
	submitPending := func(t *testing.T, env *testEnv) uint {
		env.gateway.mintErr = errors.New("rpc down")
		s := env.seedSession(t, 500)
		c, w := testutil.NewTestContext(http.MethodPost, "/api/claims", submitBody(s.ID()))
		env.claimHandler.SubmitClaim(c)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		var got submittedClaim
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		env.gateway.mintErr = nil
		return got.Claim.ID
	}

	t.Run("approves and mints a pending claim", func(t *testing.T) {
		env := newTestEnv(t)
		id := submitPending(t, env)
		env.gateway.mintDigest = "manualDigest"

		c, w := testutil.NewTestContext(http.MethodPost, fmt.Sprintf("/api/claims/%d/approve", id), nil)
		testutil.SetURLParam(c, "id", fmt.Sprintf("%d", id))
		env.claimHandler.ApproveClaim(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		var got struct {
			TxDigest string `json:"tx_digest"`
			Claim    struct {
				Status string `json:"status"`
			} `json:"claim"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		assert.Equal(t, "manualDigest", got.TxDigest)
		assert.Equal(t, "completed", got.Claim.Status)
	})

	t.Run("approving a completed claim returns 409", func(t *testing.T) {
		env := newTestEnv(t)
		id := submitPending(t, env)
		env.gateway.mintDigest = "digest"

		c, _ := testutil.NewTestContext(http.MethodPost, fmt.Sprintf("/api/claims/%d/approve", id), nil)
		testutil.SetURLParam(c, "id", fmt.Sprintf("%d", id))
		env.claimHandler.ApproveClaim(c)

		c2, w2 := testutil.NewTestContext(http.MethodPost, fmt.Sprintf("/api/claims/%d/approve", id), nil)
		testutil.SetURLParam(c2, "id", fmt.Sprintf("%d", id))
		env.claimHandler.ApproveClaim(c2)

		assert.Equal(t, http.StatusConflict, w2.Code)

		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w2, &resp))
		require.NotNil(t, resp.Error)
		assert.Contains(t, resp.Error.Message, "completed")
	})

	t.Run("unknown claim returns 404", func(t *testing.T) {
		env := newTestEnv(t)
		c, w := testutil.NewTestContext(http.MethodPost, "/api/claims/99/approve", nil)
		testutil.SetURLParam(c, "id", "99")

		env.claimHandler.ApproveClaim(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("mint failure returns 502 and claim stays pending", func(t *testing.T) {
		env := newTestEnv(t)
		id := submitPending(t, env)
		env.gateway.mintErr = errors.New("treasury locked")

		c, w := testutil.NewTestContext(http.MethodPost, fmt.Sprintf("/api/claims/%d/approve", id), nil)
		testutil.SetURLParam(c, "id", fmt.Sprintf("%d", id))
		env.claimHandler.ApproveClaim(c)

		assert.Equal(t, http.StatusBadGateway, w.Code)

		pendingC, pendingW := testutil.NewTestContext(http.MethodGet, "/api/claims/pending", nil)
		env.claimHandler.ListPendingClaims(pendingC)
		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(pendingW, &resp))
		var pending []struct {
			ID uint `json:"id"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &pending))
		require.Len(t, pending, 1)
		assert.Equal(t, id, pending[0].ID)
	})
}

func TestClaimHandler_CompleteClaim(t *testing.T) {
	seedPending := func(t *testing.T, env *testEnv) uint {
		env.gateway.mintErr = errors.New("rpc down")
		s := env.seedSession(t, 500)
		c, w := testutil.NewTestContext(http.MethodPost, "/api/claims", submitBody(s.ID()))
		env.claimHandler.SubmitClaim(c)
		require.Equal(t, http.StatusCreated, w.Code)
		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		var got submittedClaim
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		env.gateway.mintErr = nil
		return got.Claim.ID
	}

	t.Run("finalizes with a signed transaction", func(t *testing.T) {
		env := newTestEnv(t)
		id := seedPending(t, env)
		env.gateway.execDigest = "signedDigest"

		c, w := testutil.NewTestContext(http.MethodPost, fmt.Sprintf("/api/claims/%d/complete", id),
			map[string]string{"signedTransaction": "dHg=:c2ln"})
		testutil.SetURLParam(c, "id", fmt.Sprintf("%d", id))
		env.claimHandler.CompleteClaim(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		var got struct {
			TxDigest    string `json:"tx_digest"`
			ExplorerURL string `json:"explorer_url"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		assert.Equal(t, "signedDigest", got.TxDigest)
		assert.Equal(t, "https://suiexplorer.com/txblock/signedDigest?network=testnet", got.ExplorerURL)
	})

	t.Run("missing signedTransaction returns 400", func(t *testing.T) {
		env := newTestEnv(t)
		id := seedPending(t, env)

		c, w := testutil.NewTestContext(http.MethodPost, fmt.Sprintf("/api/claims/%d/complete", id),
			map[string]string{})
		testutil.SetURLParam(c, "id", fmt.Sprintf("%d", id))
		env.claimHandler.CompleteClaim(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestClaimHandler_RejectClaim(t *testing.T) {
	env := newTestEnv(t)
	env.gateway.mintErr = errors.New("rpc down")
	s := env.seedSession(t, 500)
	c, w := testutil.NewTestContext(http.MethodPost, "/api/claims", submitBody(s.ID()))
	env.claimHandler.SubmitClaim(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var got submittedClaim
	require.NoError(t, json.Unmarshal(resp.Data, &got))

	rc, rw := testutil.NewTestContext(http.MethodPost, fmt.Sprintf("/api/claims/%d/reject", got.Claim.ID), nil)
	testutil.SetURLParam(rc, "id", fmt.Sprintf("%d", got.Claim.ID))
	env.claimHandler.RejectClaim(rc)

	assert.Equal(t, http.StatusOK, rw.Code)

	// Rejecting again conflicts: rejected is final.
	rc2, rw2 := testutil.NewTestContext(http.MethodPost, fmt.Sprintf("/api/claims/%d/reject", got.Claim.ID), nil)
	testutil.SetURLParam(rc2, "id", fmt.Sprintf("%d", got.Claim.ID))
	env.claimHandler.RejectClaim(rc2)

	assert.Equal(t, http.StatusConflict, rw2.Code)
}
