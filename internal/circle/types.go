package circle

import "time"

const (
	EndpointInitializeUser = "/users/initialize"
	EndpointWallets        = "/wallets"
)

// Challenge is issued after user initialization. It has to be completed on a
// client device (PIN or passkey) before a user token is available.
type Challenge struct {
	ID string `json:"challengeId"`
}

type InitializeUserRequest struct {
	UserIDs        []string `json:"userIds"`
	IdempotencyKey string   `json:"idempotencyKey"`
}

type CreateWalletRequest struct {
	AccountType    string   `json:"accountType"`
	Blockchains    []string `json:"blockchains"`
	UserToken      string   `json:"userToken"`
	IdempotencyKey string   `json:"idempotencyKey"`
}

// Wallet is a provider-hosted programmable wallet.
type Wallet struct {
	ID          string    `json:"id"`
	State       string    `json:"state,omitempty"`
	UserID      string    `json:"userId,omitempty"`
	Address     string    `json:"address,omitempty"`
	AccountType string    `json:"accountType,omitempty"`
	Blockchain  string    `json:"blockchain,omitempty"`
	Blockchains []string  `json:"blockchains,omitempty"`
	CreateDate  time.Time `json:"createDate,omitzero"`
	UpdateDate  time.Time `json:"updateDate,omitzero"`
}

// createWalletData accepts both a single wallet object and the provider's
// {"wallets": [...]} list form.
type createWalletData struct {
	Wallet
	Wallets []Wallet `json:"wallets"`
}

func (d createWalletData) wallet() Wallet {
	if d.ID != "" || len(d.Wallets) == 0 {
		return d.Wallet
	}

	w := d.Wallets[0]
	if len(w.Blockchains) == 0 {
		for _, other := range d.Wallets {
			if other.Blockchain != "" {
				w.Blockchains = append(w.Blockchains, other.Blockchain)
			}
		}
	}

	return w
}
