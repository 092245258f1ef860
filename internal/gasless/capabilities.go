package gasless

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/chapool/go-gasless/internal/circle"
)

const (
	SimulatedStatus        = "SIMULATED_SUCCESS"
	SimulatedTransactionID = "sim-tx-123"
)

// ChallengeCompleter obtains a user token for an issued challenge. Completing
// a challenge requires the user's device, so real implementations sit outside
// this process.
type ChallengeCompleter interface {
	CompleteChallenge(ctx context.Context, challenge circle.Challenge) (UserToken, error)
}

// TransferSubmitter hands a transfer intent to whatever executes it.
type TransferSubmitter interface {
	SubmitTransfer(ctx context.Context, intent TransferIntent) (*TransferResult, error)
}

// StaticChallengeCompleter returns a preconfigured token for every challenge.
type StaticChallengeCompleter struct {
	Token UserToken
}

func (s StaticChallengeCompleter) CompleteChallenge(_ context.Context, challenge circle.Challenge) (UserToken, error) {
	if s.Token == "" {
		return "", errors.New("no user token configured")
	}

	log.Debug().Str("challenge_id", challenge.ID).Msg("Using static user token for challenge")

	return s.Token, nil
}

// SimulatedTransferSubmitter prints the intent instead of submitting it. The
// provider's Gas Station policy would sponsor the fee of a real submission.
type SimulatedTransferSubmitter struct {
	Out io.Writer
}

func (s SimulatedTransferSubmitter) SubmitTransfer(_ context.Context, intent TransferIntent) (*TransferResult, error) {
	out := s.Out
	if out == nil {
		out = io.Discard
	}

	fmt.Fprintln(out, "Simulated transaction details:")
	if b, err := json.MarshalIndent(intent, "", "  "); err == nil {
		fmt.Fprintln(out, string(b))
	}
	fmt.Fprintln(out, "\n--> Gas Station would automatically sponsor the gas for this transaction based on configured policies.")

	return &TransferResult{Status: SimulatedStatus, TransactionID: SimulatedTransactionID}, nil
}

// NewTransferIntent builds the intent for sending amount of currency from
// walletID to destination on chain.
func NewTransferIntent(walletID string, destination string, amount float64, currency string, chain string) TransferIntent {
	return TransferIntent{
		WalletID:           walletID,
		DestinationAddress: destination,
		Amount: Amount{
			Amount:   strconv.FormatFloat(amount, 'f', -1, 64),
			Currency: currency,
		},
		Chain: chain,
	}
}

// SimulateGaslessTransaction prints the transfer intent and returns the
// synthetic success result. It never touches the network and never fails.
func SimulateGaslessTransaction(out io.Writer, walletID string, destination string, amount float64, currency string) TransferResult {
	if out == nil {
		out = io.Discard
	}

	fmt.Fprintf(out, "Simulating gasless transaction from wallet %s...\n", walletID)

	intent := NewTransferIntent(walletID, destination, amount, currency, DefaultChain)

	//nolint:errcheck // the simulated submitter cannot fail
	result, _ := SimulatedTransferSubmitter{Out: out}.SubmitTransfer(context.Background(), intent)

	return *result
}
