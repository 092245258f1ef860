package circle

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

// CreateWallet creates a programmable wallet for the user identified by
// req.UserToken. An idempotency key is generated if none is set.
func (c *Client) CreateWallet(ctx context.Context, req CreateWalletRequest) (*Wallet, error) {
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = c.newIdempotencyKey()
	}

	result, err := c.Request(ctx, http.MethodPost, EndpointWallets, req)
	if err != nil {
		return nil, err
	}

	var data createWalletData
	if err := result.Decode(&data); err != nil {
		return nil, errors.Wrap(err, "failed to create wallet")
	}

	wallet := data.wallet()
	if wallet.ID == "" {
		return nil, errors.Wrap(ErrAbsent, "failed to create wallet: missing wallet id")
	}

	return &wallet, nil
}

// GetWallet fetches a single wallet by id.
func (c *Client) GetWallet(ctx context.Context, walletID string) (*Wallet, error) {
	if walletID == "" {
		return nil, errors.New("wallet id is required")
	}

	result, err := c.do(ctx, http.MethodGet, EndpointWallets+"/"+url.PathEscape(walletID), EndpointWallets+"/{id}", nil)
	if err != nil {
		return nil, err
	}

	var data struct {
		Wallet *Wallet `json:"wallet"`
	}
	if err := result.Decode(&data); err != nil {
		return nil, errors.Wrap(err, "failed to get wallet")
	}

	if data.Wallet == nil || data.Wallet.ID == "" {
		return nil, errors.Wrap(ErrAbsent, "failed to get wallet")
	}

	return data.Wallet, nil
}
