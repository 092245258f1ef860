package circle_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-gasless/internal/circle"
	"github/chapool/go-gasless/internal/config"
	"github/chapool/go-gasless/internal/sandbox"
	"github/chapool/go-gasless/internal/test"
)

func TestInitializeUserAgainstSandbox(t *testing.T) {
	test.WithTestSandbox(t, func(_ *sandbox.Server, cfg config.Config) {
		client := circle.NewClient(cfg.Provider, nil)

		challenge, err := client.InitializeUser(t.Context(), "user-1")
		require.NoError(t, err)
		assert.NotEmpty(t, challenge.ID)

		_, err = client.InitializeUser(t.Context(), "user-1")
		require.ErrorIs(t, err, circle.ErrUserAlreadyInitialized)

		other, err := client.InitializeUser(t.Context(), "user-2")
		require.NoError(t, err)
		assert.NotEqual(t, challenge.ID, other.ID)
	})
}

func TestInitializeUserIdempotentReplay(t *testing.T) {
	test.WithTestSandbox(t, func(_ *sandbox.Server, cfg config.Config) {
		client := circle.NewClient(cfg.Provider, nil)
		client.SetIdempotencyKeyFunc(func() string { return "6f1d2a34-0000-4000-8000-000000000001" })

		first, err := client.InitializeUser(t.Context(), "user-1")
		require.NoError(t, err)

		second, err := client.InitializeUser(t.Context(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})
}

func TestSandboxRejectsWrongAPIKey(t *testing.T) {
	test.WithTestSandbox(t, func(_ *sandbox.Server, cfg config.Config) {
		cfg.Provider.APIKey = "some-other-key"
		client := circle.NewClient(cfg.Provider, nil)

		_, err := client.InitializeUser(t.Context(), "user-1")

		var remoteErr *circle.RemoteError
		require.ErrorAs(t, err, &remoteErr)
		assert.Equal(t, http.StatusUnauthorized, remoteErr.StatusCode)
		require.NotErrorIs(t, err, circle.ErrUserAlreadyInitialized)
	})
}

func TestCreateAndGetWalletAgainstSandbox(t *testing.T) {
	test.WithTestSandbox(t, func(_ *sandbox.Server, cfg config.Config) {
		client := circle.NewClient(cfg.Provider, nil)

		wallet, err := client.CreateWallet(t.Context(), circle.CreateWalletRequest{
			AccountType: config.AccountTypeSCA,
			Blockchains: []string{"ETH-SEPOLIA"},
			UserToken:   config.SimulatedUserToken,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, wallet.ID)
		assert.Equal(t, config.AccountTypeSCA, wallet.AccountType)
		assert.Equal(t, []string{"ETH-SEPOLIA"}, wallet.Blockchains)
		assert.Equal(t, "LIVE", wallet.State)
		assert.True(t, common.IsHexAddress(wallet.Address))
		assert.True(t, test.Now.Equal(wallet.CreateDate))

		fetched, err := client.GetWallet(t.Context(), wallet.ID)
		require.NoError(t, err)
		assert.Equal(t, wallet.ID, fetched.ID)
		assert.Equal(t, wallet.Address, fetched.Address)
	})
}

func TestCreateWalletValidationErrors(t *testing.T) {
	test.WithTestSandbox(t, func(_ *sandbox.Server, cfg config.Config) {
		client := circle.NewClient(cfg.Provider, nil)

		tests := []struct {
			name string
			req  circle.CreateWalletRequest
		}{
			{"missing user token", circle.CreateWalletRequest{AccountType: "SCA", Blockchains: []string{"ETH-SEPOLIA"}}},
			{"unknown account type", circle.CreateWalletRequest{AccountType: "XYZ", Blockchains: []string{"ETH-SEPOLIA"}, UserToken: "tok"}},
			{"no blockchains", circle.CreateWalletRequest{AccountType: "SCA", UserToken: "tok"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := client.CreateWallet(t.Context(), tt.req)

				var remoteErr *circle.RemoteError
				require.ErrorAs(t, err, &remoteErr)
				assert.Equal(t, http.StatusBadRequest, remoteErr.StatusCode)
			})
		}
	})
}

func TestGetWalletNotFound(t *testing.T) {
	test.WithTestSandbox(t, func(_ *sandbox.Server, cfg config.Config) {
		client := circle.NewClient(cfg.Provider, nil)

		_, err := client.GetWallet(t.Context(), "does-not-exist")

		var remoteErr *circle.RemoteError
		require.ErrorAs(t, err, &remoteErr)
		assert.Equal(t, http.StatusNotFound, remoteErr.StatusCode)

		_, err = client.GetWallet(t.Context(), "")
		require.Error(t, err)
	})
}

func TestCreateWalletListForm(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data": {"wallets": [
			{"id": "w1", "blockchain": "ETH-SEPOLIA", "accountType": "SCA"},
			{"id": "w2", "blockchain": "MATIC-AMOY", "accountType": "SCA"}
		]}}`))
	}))
	defer ts.Close()

	client := circle.NewClient(test.NewTestConfig(ts.URL).Provider, nil)

	wallet, err := client.CreateWallet(t.Context(), circle.CreateWalletRequest{AccountType: "SCA", Blockchains: []string{"ETH-SEPOLIA", "MATIC-AMOY"}, UserToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, "w1", wallet.ID)
	assert.Equal(t, []string{"ETH-SEPOLIA", "MATIC-AMOY"}, wallet.Blockchains)
}

func TestCreateWalletWithoutIDIsAbsent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data": {"state": "LIVE"}}`))
	}))
	defer ts.Close()

	client := circle.NewClient(test.NewTestConfig(ts.URL).Provider, nil)

	_, err := client.CreateWallet(t.Context(), circle.CreateWalletRequest{UserToken: "tok"})
	require.ErrorIs(t, err, circle.ErrAbsent)
}
