package gasless_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-gasless/internal/circle"
	"github/chapool/go-gasless/internal/config"
	"github/chapool/go-gasless/internal/gasless"
	"github/chapool/go-gasless/internal/metrics"
	"github/chapool/go-gasless/internal/sandbox"
	"github/chapool/go-gasless/internal/test"
)

type fakeProvider struct {
	challenge    *circle.Challenge
	challengeErr error
	wallet       *circle.Wallet
	walletErr    error

	initCalls   int
	walletCalls int
	lastRequest circle.CreateWalletRequest
}

func (f *fakeProvider) InitializeUser(_ context.Context, _ string) (*circle.Challenge, error) {
	f.initCalls++
	return f.challenge, f.challengeErr
}

func (f *fakeProvider) CreateWallet(_ context.Context, req circle.CreateWalletRequest) (*circle.Wallet, error) {
	f.walletCalls++
	f.lastRequest = req
	return f.wallet, f.walletErr
}

type failingCompleter struct{}

func (failingCompleter) CompleteChallenge(_ context.Context, _ circle.Challenge) (gasless.UserToken, error) {
	return "", errors.New("device unreachable")
}

type recordingSubmitter struct {
	intents []gasless.TransferIntent
}

func (r *recordingSubmitter) SubmitTransfer(_ context.Context, intent gasless.TransferIntent) (*gasless.TransferResult, error) {
	r.intents = append(r.intents, intent)
	return &gasless.TransferResult{Status: "SUBMITTED", TransactionID: "tx-1"}, nil
}

func newTestOrchestrator(t *testing.T, provider gasless.Provider, out *bytes.Buffer) (*gasless.Orchestrator, *metrics.Service) {
	t.Helper()

	m, err := metrics.New()
	require.NoError(t, err)

	cfg := test.NewTestConfig("http://unused.local")

	return gasless.NewOrchestrator(
		cfg.Workflow,
		provider,
		gasless.StaticChallengeCompleter{Token: config.SimulatedUserToken},
		gasless.SimulatedTransferSubmitter{Out: out},
		m,
		out,
	), m
}

func TestRunAgainstSandbox(t *testing.T) {
	test.WithTestSandbox(t, func(_ *sandbox.Server, cfg config.Config) {
		var out bytes.Buffer
		m, err := metrics.New()
		require.NoError(t, err)

		o := gasless.NewOrchestrator(
			cfg.Workflow,
			circle.NewClient(cfg.Provider, m),
			gasless.StaticChallengeCompleter{Token: gasless.UserToken(cfg.Workflow.UserToken)},
			gasless.SimulatedTransferSubmitter{Out: &out},
			m,
			&out,
		)

		report, err := o.Run(t.Context())
		require.NoError(t, err)

		assert.Equal(t, gasless.StateTransferSimulated, report.State)
		require.NotNil(t, report.Challenge)
		require.NotNil(t, report.Wallet)
		assert.Equal(t, config.AccountTypeSCA, report.Wallet.AccountType)
		assert.Equal(t, &gasless.TransferResult{Status: "SIMULATED_SUCCESS", TransactionID: "sim-tx-123"}, report.Transfer)

		printed := out.String()
		assert.Contains(t, printed, "Step 1: User initialization successful.")
		assert.Contains(t, printed, "Challenge ID: "+report.Challenge.ID)
		assert.Contains(t, printed, "Step 3: Programmable Wallet created successfully.")
		assert.Contains(t, printed, "Wallet ID: "+report.Wallet.ID)
		assert.Contains(t, printed, "Step 4: (MANUAL) Configure Gas Station policies")
		assert.Contains(t, printed, "Gasless Experience Setup Simulated Successfully!")
		assert.NotContains(t, printed, config.SimulatedUserToken)

		assert.InDelta(t, 1, testutil.ToFloat64(m.WorkflowRuns().WithLabelValues("transfer_simulated")), 0)
	})
}

func TestRunSecondTimeReportsAlreadyInitialized(t *testing.T) {
	test.WithTestSandbox(t, func(_ *sandbox.Server, cfg config.Config) {
		client := circle.NewClient(cfg.Provider, nil)
		o := gasless.NewOrchestrator(cfg.Workflow, client, gasless.StaticChallengeCompleter{Token: "tok"}, gasless.SimulatedTransferSubmitter{}, nil, nil)

		_, err := o.Run(t.Context())
		require.NoError(t, err)

		report, err := o.Run(t.Context())
		require.ErrorIs(t, err, gasless.ErrUserInitFailed)
		require.ErrorIs(t, err, circle.ErrUserAlreadyInitialized)
		assert.Equal(t, gasless.StateAborted, report.State)
	})
}

func TestRunAbortsWhenUserInitializationIsAbsent(t *testing.T) {
	var out bytes.Buffer
	provider := &fakeProvider{challengeErr: circle.ErrAbsent}
	o, m := newTestOrchestrator(t, provider, &out)

	report, err := o.Run(t.Context())
	require.ErrorIs(t, err, gasless.ErrUserInitFailed)
	require.ErrorIs(t, err, circle.ErrAbsent)
	require.NotErrorIs(t, err, gasless.ErrWalletCreationFailed)
	assert.Equal(t, "User initialization failed: provider returned no data", err.Error())
	assert.Equal(t, circle.ErrAbsent, errors.Cause(err))

	assert.Equal(t, gasless.StateAborted, report.State)
	assert.Nil(t, report.Challenge)
	assert.Equal(t, 1, provider.initCalls)
	assert.Equal(t, 0, provider.walletCalls)
	assert.Contains(t, out.String(), "--- An error occurred ---")
	assert.Contains(t, out.String(), "User initialization failed")
	assert.NotContains(t, out.String(), "Creating programmable wallet")

	assert.InDelta(t, 1, testutil.ToFloat64(m.WorkflowRuns().WithLabelValues("aborted")), 0)
}

func TestRunKeepsRemoteErrorDetails(t *testing.T) {
	provider := &fakeProvider{challengeErr: errors.Wrap(&circle.RemoteError{StatusCode: 500, Body: "boom"}, "failed to initialize user")}
	o, _ := newTestOrchestrator(t, provider, &bytes.Buffer{})

	_, err := o.Run(t.Context())

	var remoteErr *circle.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, 500, remoteErr.StatusCode)
	require.ErrorIs(t, err, gasless.ErrUserInitFailed)
}

func TestRunAbortsWhenWalletCreationFails(t *testing.T) {
	var out bytes.Buffer
	provider := &fakeProvider{
		challenge: &circle.Challenge{ID: "abc"},
		walletErr: circle.ErrAbsent,
	}
	o, _ := newTestOrchestrator(t, provider, &out)

	report, err := o.Run(t.Context())
	require.ErrorIs(t, err, gasless.ErrWalletCreationFailed)
	assert.Equal(t, gasless.StateAborted, report.State)
	assert.Equal(t, "abc", report.Challenge.ID)
	assert.Nil(t, report.Wallet)
	assert.Nil(t, report.Transfer)

	assert.Equal(t, config.AccountTypeSCA, provider.lastRequest.AccountType)
	assert.Equal(t, []string{"ETH-SEPOLIA"}, provider.lastRequest.Blockchains)
	assert.Equal(t, config.SimulatedUserToken, provider.lastRequest.UserToken)

	assert.Contains(t, out.String(), "Programmable Wallet creation failed")
	assert.NotContains(t, out.String(), "Simulating gasless transaction")
}

func TestRunAbortsWhenChallengeCannotBeCompleted(t *testing.T) {
	provider := &fakeProvider{challenge: &circle.Challenge{ID: "abc"}}

	o := gasless.NewOrchestrator(test.NewTestConfig("http://unused.local").Workflow, provider, failingCompleter{}, gasless.SimulatedTransferSubmitter{}, nil, nil)

	report, err := o.Run(t.Context())
	require.ErrorIs(t, err, gasless.ErrChallengeFailed)
	assert.Equal(t, gasless.StateAborted, report.State)
	assert.Equal(t, 0, provider.walletCalls)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	provider := &fakeProvider{}
	cfg := test.NewTestConfig("http://unused.local").Workflow
	cfg.UserID = ""
	cfg.Blockchains = nil

	o := gasless.NewOrchestrator(cfg, provider, gasless.StaticChallengeCompleter{Token: "tok"}, gasless.SimulatedTransferSubmitter{}, nil, nil)

	report, err := o.Run(t.Context())
	require.Error(t, err)
	assert.Equal(t, gasless.StateAborted, report.State)
	assert.Equal(t, 0, provider.initCalls)
}

func TestRunUsesInjectedTransferSubmitter(t *testing.T) {
	provider := &fakeProvider{
		challenge: &circle.Challenge{ID: "abc"},
		wallet:    &circle.Wallet{ID: "w1"},
	}
	submitter := &recordingSubmitter{}

	cfg := test.NewTestConfig("http://unused.local").Workflow
	cfg.DestinationAddress = "0x000000000000000000000000000000000000dEaD"
	cfg.Amount = 2.5

	o := gasless.NewOrchestrator(cfg, provider, gasless.StaticChallengeCompleter{Token: "tok"}, submitter, nil, nil)

	report, err := o.Run(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "tx-1", report.Transfer.TransactionID)

	require.Len(t, submitter.intents, 1)
	assert.Equal(t, gasless.TransferIntent{
		WalletID:           "w1",
		DestinationAddress: "0x000000000000000000000000000000000000dEaD",
		Amount:             gasless.Amount{Amount: "2.5", Currency: "USD"},
		Chain:              "ETH-SEPOLIA",
	}, submitter.intents[0])
}

func TestSimulateGaslessTransaction(t *testing.T) {
	var out bytes.Buffer

	result := gasless.SimulateGaslessTransaction(&out, "w1", "0xDEAD", 5, "USD")
	assert.Equal(t, gasless.TransferResult{Status: "SIMULATED_SUCCESS", TransactionID: "sim-tx-123"}, result)

	printed := out.String()
	assert.Contains(t, printed, "Simulating gasless transaction from wallet w1...")

	start := strings.Index(printed, "{")
	end := strings.LastIndex(printed, "}")
	require.Less(t, start, end)

	var intent map[string]any
	require.NoError(t, json.Unmarshal([]byte(printed[start:end+1]), &intent))
	assert.Equal(t, "w1", intent["walletId"])
	assert.Equal(t, "0xDEAD", intent["destinationAddress"])
	assert.Equal(t, map[string]any{"amount": "5", "currency": "USD"}, intent["amount"])
	assert.Equal(t, "ETH-SEPOLIA", intent["chain"])

	// a nil writer is fine too
	assert.Equal(t, result, gasless.SimulateGaslessTransaction(nil, "w1", "0xDEAD", 5, "USD"))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "init", gasless.StateInit.String())
	assert.Equal(t, "challenge", gasless.StateChallenge.String())
	assert.Equal(t, "wallet_created", gasless.StateWalletCreated.String())
	assert.Equal(t, "transfer_simulated", gasless.StateTransferSimulated.String())
	assert.Equal(t, "aborted", gasless.StateAborted.String())
	assert.Equal(t, "unknown", gasless.State(42).String())
}

func TestStaticChallengeCompleterRequiresToken(t *testing.T) {
	_, err := gasless.StaticChallengeCompleter{}.CompleteChallenge(t.Context(), circle.Challenge{ID: "abc"})
	require.Error(t, err)

	token, err := gasless.StaticChallengeCompleter{Token: "tok"}.CompleteChallenge(t.Context(), circle.Challenge{ID: "abc"})
	require.NoError(t, err)
	assert.Equal(t, gasless.UserToken("tok"), token)
}
