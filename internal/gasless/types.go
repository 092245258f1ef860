package gasless

import (
	"github/chapool/go-gasless/internal/circle"
)

// State is the position of a workflow run in its linear chain
// Init -> Challenge -> WalletCreated -> TransferSimulated. Any failure moves
// the run to Aborted.
type State int

const (
	StateInit State = iota
	StateChallenge
	StateWalletCreated
	StateTransferSimulated
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateChallenge:
		return "challenge"
	case StateWalletCreated:
		return "wallet_created"
	case StateTransferSimulated:
		return "transfer_simulated"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// UserToken is obtained once the user completed the challenge.
type UserToken string

type Amount struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// TransferIntent describes a transfer that is built locally and never submitted.
type TransferIntent struct {
	WalletID           string `json:"walletId"`
	DestinationAddress string `json:"destinationAddress"`
	Amount             Amount `json:"amount"`
	Chain              string `json:"chain"`
}

type TransferResult struct {
	Status        string `json:"status"`
	TransactionID string `json:"transactionId"`
}

// Report summarizes a workflow run. Fields are filled as far as the run got.
type Report struct {
	State     State
	Challenge *circle.Challenge
	Wallet    *circle.Wallet
	Transfer  *TransferResult
}
