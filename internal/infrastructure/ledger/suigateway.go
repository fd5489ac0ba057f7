package ledger

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"stepsign/internal/shared/config"
	"stepsign/internal/shared/logger"
)

const (
	// Maximum response body size for ledger RPC (1MB)
	maxLedgerResponseSize = 1 << 20

	// Gas budget for mint transactions, in MIST.
	mintGasBudget = "10000000"

	stepCoinModule   = "step_coin"
	stepCoinMintFn   = "mint"
	stepCoinTypeName = "STEP_COIN"
)

var fullnodeURLs = map[string]string{
	"mainnet":  "https://fullnode.mainnet.sui.io:443",
	"testnet":  "https://fullnode.testnet.sui.io:443",
	"devnet":   "https://fullnode.devnet.sui.io:443",
	"localnet": "http://127.0.0.1:9000",
}

// SuiGateway talks JSON-RPC to a Sui fullnode. It implements
// ledger.Gateway for the claim workflow.
type SuiGateway struct {
	rpcURL        string
	packageID     string
	treasuryCapID string
	signer        *adminSigner
	httpClient    *http.Client
	logger        logger.Interface
}

// NewSuiGateway builds the gateway from configuration. A missing admin key
// is not an error: MintTokens fails fast and claims stay pending for
// manual approval.
func NewSuiGateway(cfg *config.LedgerConfig, log logger.Interface) (*SuiGateway, error) {
	rpcURL := cfg.RPCURL
	if rpcURL == "" {
		rpcURL = fullnodeURLs[cfg.Network]
	}
	if rpcURL == "" {
		return nil, fmt.Errorf("unknown ledger network: %s", cfg.Network)
	}

	g := &SuiGateway{
		rpcURL:        rpcURL,
		packageID:     cfg.PackageID,
		treasuryCapID: cfg.TreasuryCapID,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout(),
		},
		logger: log,
	}

	if cfg.AdminPrivateKey != "" {
		signer, err := ParseAdminKey(cfg.AdminPrivateKey)
		if err != nil {
			return nil, fmt.Errorf("failed to load admin private key: %w", err)
		}
		g.signer = signer
		log.Infow("ledger gateway initialized with admin wallet",
			"address", signer.Address(), "rpc_url", rpcURL)
	} else {
		log.Warnw("no admin private key configured, minting requires manual approval")
	}

	return g, nil
}

func (g *SuiGateway) stepCoinType() string {
	return fmt.Sprintf("%s::%s::%s", g.packageID, stepCoinModule, stepCoinTypeName)
}

// MintTokens builds a step_coin::mint call, signs it with the admin key and
// submits it. The amount is display units and floors to base units.
func (g *SuiGateway) MintTokens(ctx context.Context, recipient string, amount float64) (string, error) {
	if g.signer == nil {
		return "", fmt.Errorf("admin private key not configured")
	}

	baseAmount := int64(amount * 1_000_000)
	if baseAmount <= 0 {
		return "", fmt.Errorf("mint amount must be positive, got %g", amount)
	}

	var build struct {
		TxBytes string `json:"txBytes"`
	}
	err := g.rpcCall(ctx, "unsafe_moveCall", []interface{}{
		g.signer.Address(),
		g.packageID,
		stepCoinModule,
		stepCoinMintFn,
		[]interface{}{},
		[]interface{}{g.treasuryCapID, strconv.FormatInt(baseAmount, 10), recipient},
		nil,
		mintGasBudget,
	}, &build)
	if err != nil {
		return "", fmt.Errorf("failed to build mint transaction: %w", err)
	}

	txBytes, err := base64.StdEncoding.DecodeString(build.TxBytes)
	if err != nil {
		return "", fmt.Errorf("invalid transaction bytes from node: %w", err)
	}

	digest, err := g.executeSigned(ctx, build.TxBytes, g.signer.SignTransaction(txBytes))
	if err != nil {
		return "", err
	}

	g.logger.Infow("tokens minted",
		"recipient", recipient, "amount", amount, "tx_digest", digest)

	return digest, nil
}

// ExecuteTransaction submits a user-signed payload. The payload is the
// wallet's transaction bytes and serialized signature joined by a colon,
// both base64.
func (g *SuiGateway) ExecuteTransaction(ctx context.Context, signedTxBase64 string) (string, error) {
	txBytes, signature, ok := strings.Cut(signedTxBase64, ":")
	if !ok {
		return "", fmt.Errorf("signed transaction must be txBytes:signature")
	}

	return g.executeSigned(ctx, txBytes, signature)
}

func (g *SuiGateway) executeSigned(ctx context.Context, txBytesB64, signatureB64 string) (string, error) {
	var result struct {
		Digest  string `json:"digest"`
		Effects struct {
			Status struct {
				Status string `json:"status"`
				Error  string `json:"error"`
			} `json:"status"`
		} `json:"effects"`
	}

	err := g.rpcCall(ctx, "sui_executeTransactionBlock", []interface{}{
		txBytesB64,
		[]string{signatureB64},
		map[string]interface{}{"showEffects": true},
		"WaitForLocalExecution",
	}, &result)
	if err != nil {
		return "", fmt.Errorf("failed to execute transaction: %w", err)
	}

	if result.Effects.Status.Status != "success" {
		return "", fmt.Errorf("transaction failed: %s", result.Effects.Status.Error)
	}

	return result.Digest, nil
}

// GetBalance sums the owner's STEP coin balance and returns display units.
func (g *SuiGateway) GetBalance(ctx context.Context, owner string) (float64, error) {
	var result struct {
		TotalBalance string `json:"totalBalance"`
	}

	err := g.rpcCall(ctx, "suix_getBalance", []interface{}{owner, g.stepCoinType()}, &result)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch balance: %w", err)
	}

	baseUnits, err := strconv.ParseInt(result.TotalBalance, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid balance from node: %w", err)
	}

	return float64(baseUnits) / 1_000_000, nil
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

func (g *SuiGateway) rpcCall(ctx context.Context, method string, params []interface{}, out interface{}) error {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal rpc request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.rpcURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create rpc request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("rpc request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxLedgerResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read rpc response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("rpc returned status %d", resp.StatusCode)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return fmt.Errorf("failed to decode rpc response: %w", err)
	}

	if rpcResp.Error != nil {
		return fmt.Errorf("rpc error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}

	if out != nil {
		if err := json.Unmarshal(rpcResp.Result, out); err != nil {
			return fmt.Errorf("failed to decode rpc result: %w", err)
		}
	}

	return nil
}
