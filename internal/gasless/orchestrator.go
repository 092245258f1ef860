package gasless

import (
	"context"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github/chapool/go-gasless/internal/circle"
	"github/chapool/go-gasless/internal/config"
	"github/chapool/go-gasless/internal/metrics"
	"github/chapool/go-gasless/internal/util"
)

const (
	DefaultChain = "ETH-SEPOLIA"

	// tokenPreviewLength is how much of a user token is ever printed.
	tokenPreviewLength = 10
)

var (
	ErrUserInitFailed       = errors.New("User initialization failed")          //nolint:stylecheck // printed as is
	ErrWalletCreationFailed = errors.New("Programmable Wallet creation failed") //nolint:stylecheck // printed as is
	ErrChallengeFailed      = errors.New("User challenge completion failed")    //nolint:stylecheck // printed as is
	ErrTransferFailed       = errors.New("Transfer submission failed")          //nolint:stylecheck // printed as is
)

// stepError marks which workflow step failed. Both the step sentinel and the
// cause match errors.Is.
type stepError struct {
	step  error
	cause error
}

func failStep(step error, cause error) error {
	return &stepError{step: step, cause: cause}
}

func (e *stepError) Error() string {
	return e.step.Error() + ": " + e.cause.Error()
}

func (e *stepError) Is(target error) bool {
	return errors.Is(e.step, target)
}

func (e *stepError) Cause() error {
	return e.cause
}

func (e *stepError) Unwrap() error {
	return e.cause
}

// Provider is the part of the wallet provider API the workflow needs.
type Provider interface {
	InitializeUser(ctx context.Context, userID string) (*circle.Challenge, error)
	CreateWallet(ctx context.Context, req circle.CreateWalletRequest) (*circle.Wallet, error)
}

// Orchestrator runs the gasless setup steps strictly in sequence and prints
// human-readable progress to out.
type Orchestrator struct {
	config     config.Workflow
	provider   Provider
	challenges ChallengeCompleter
	transfers  TransferSubmitter
	metrics    *metrics.Service
	out        io.Writer
}

func NewOrchestrator(
	cfg config.Workflow,
	provider Provider,
	challenges ChallengeCompleter,
	transfers TransferSubmitter,
	m *metrics.Service,
	out io.Writer,
) *Orchestrator {
	if out == nil {
		out = io.Discard
	}

	return &Orchestrator{
		config:     cfg,
		provider:   provider,
		challenges: challenges,
		transfers:  transfers,
		metrics:    m,
		out:        out,
	}
}

// Run executes the whole workflow. The returned report is never nil; on
// failure its state is StateAborted and the error tells which step failed.
func (o *Orchestrator) Run(ctx context.Context) (*Report, error) {
	report := &Report{State: StateInit}

	o.printf("--- Creating a Gasless Experience with Circle ---\n")

	err := o.run(ctx, report)
	if err != nil {
		report.State = StateAborted
		o.printf("\n--- An error occurred ---\n%v\n", err)
	} else {
		o.printf("\n--- Gasless Experience Setup Simulated Successfully! ---\n")
	}

	o.metrics.ObserveWorkflowRun(report.State.String())

	return report, err
}

func (o *Orchestrator) run(ctx context.Context, report *Report) error {
	log := util.LogFromContext(ctx).With().Str("user_id", o.config.UserID).Logger()

	if err := o.config.Validate(); err != nil {
		return errors.Wrap(err, "invalid workflow configuration")
	}

	// 1. initialize the user, the provider answers with a challenge
	challenge, err := o.InitializeUser(ctx, o.config.UserID)
	if err != nil {
		return err
	}
	report.Challenge = challenge
	report.State = StateChallenge

	o.printf("\nStep 1: User initialization successful.\n")
	o.printf("Challenge ID: %s\n", challenge.ID)
	o.printf("Action: Complete this challenge on a client device to get a user_token.\n")

	// 2. the challenge is completed outside of this process
	token, err := o.CompleteChallenge(ctx, *challenge)
	if err != nil {
		return err
	}
	o.printf("\nStep 2: User challenge completed, obtained user_token: %s...\n", util.Truncate(string(token), tokenPreviewLength))

	// 3. create the smart contract account
	wallet, err := o.CreateWallet(ctx, token)
	if err != nil {
		return err
	}
	report.Wallet = wallet
	report.State = StateWalletCreated

	o.printf("\nStep 3: Programmable Wallet created successfully.\n")
	o.printf("Wallet ID: %s\n", wallet.ID)

	// 4. sponsorship rules are configured in the developer console, not via API
	o.printf("\nStep 4: (MANUAL) Configure Gas Station policies in the Circle Developer Console.\n")
	o.printf("Ensure policies are set to sponsor gas for transactions from this wallet.\n")

	// 5. simulate the transfer
	transfer, err := o.SimulateTransfer(ctx, wallet.ID)
	if err != nil {
		return err
	}
	report.Transfer = transfer
	report.State = StateTransferSimulated

	log.Info().
		Str("challenge_id", challenge.ID).
		Str("wallet_id", wallet.ID).
		Str("transaction_id", transfer.TransactionID).
		Msg("Gasless workflow finished")

	return nil
}

// InitializeUser registers userID with the provider. Any failure, including
// an already initialized user, is reported as ErrUserInitFailed wrapping the
// provider error.
func (o *Orchestrator) InitializeUser(ctx context.Context, userID string) (*circle.Challenge, error) {
	o.printf("Initializing wallet for user: %s\n", userID)

	challenge, err := o.provider.InitializeUser(ctx, userID)
	if err == nil && challenge == nil {
		err = circle.ErrAbsent
	}
	if err != nil {
		return nil, failStep(ErrUserInitFailed, err)
	}

	return challenge, nil
}

func (o *Orchestrator) CompleteChallenge(ctx context.Context, challenge circle.Challenge) (UserToken, error) {
	token, err := o.challenges.CompleteChallenge(ctx, challenge)
	if err != nil {
		return "", failStep(ErrChallengeFailed, err)
	}

	return token, nil
}

// CreateWallet creates a wallet with the configured account type and chains.
func (o *Orchestrator) CreateWallet(ctx context.Context, token UserToken) (*circle.Wallet, error) {
	o.printf("Creating programmable wallet for user with token: %s...\n", util.Truncate(string(token), tokenPreviewLength))

	wallet, err := o.provider.CreateWallet(ctx, circle.CreateWalletRequest{
		AccountType: o.config.AccountType,
		Blockchains: o.config.Blockchains,
		UserToken:   string(token),
	})
	if err == nil && wallet == nil {
		err = circle.ErrAbsent
	}
	if err != nil {
		return nil, failStep(ErrWalletCreationFailed, err)
	}

	return wallet, nil
}

// SimulateTransfer builds the transfer intent from the configured
// destination and amount and hands it to the transfer submitter.
func (o *Orchestrator) SimulateTransfer(ctx context.Context, walletID string) (*TransferResult, error) {
	o.printf("Simulating gasless transaction from wallet %s...\n", walletID)

	if !common.IsHexAddress(o.config.DestinationAddress) {
		util.LogFromContext(ctx).Warn().
			Str("destination_address", o.config.DestinationAddress).
			Msg("Destination is not a valid EVM address, replace it before sending real transfers")
	}

	intent := NewTransferIntent(walletID, o.config.DestinationAddress, o.config.Amount, o.config.Currency, o.config.Chain)

	result, err := o.transfers.SubmitTransfer(ctx, intent)
	if err == nil && result == nil {
		err = errors.New("submitter returned no result")
	}
	if err != nil {
		return nil, failStep(ErrTransferFailed, err)
	}

	return result, nil
}

func (o *Orchestrator) printf(format string, args ...any) {
	fmt.Fprintf(o.out, format, args...)
}
