package sandbox

import (
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/go-openapi/swag"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github/chapool/go-gasless/internal/config"
)

// idempotencyKey scopes a client supplied key to the route it was sent to.
type idempotencyKey struct {
	route string
	key   string
}

type dataEnvelope struct {
	Data any `json:"data"`
}

type initializeUserPayload struct {
	UserIDs        []string `json:"userIds"`
	IdempotencyKey *string  `json:"idempotencyKey"`
}

type createWalletPayload struct {
	AccountType    *string  `json:"accountType"`
	Blockchains    []string `json:"blockchains"`
	UserToken      *string  `json:"userToken"`
	IdempotencyKey *string  `json:"idempotencyKey"`
}

type wallet struct {
	ID          string   `json:"id"`
	State       string   `json:"state"`
	UserToken   string   `json:"-"`
	Address     string   `json:"address"`
	AccountType string   `json:"accountType"`
	Blockchains []string `json:"blockchains"`
	CreateDate  string   `json:"createDate"`
	UpdateDate  string   `json:"updateDate"`
}

func (s *Server) postInitializeUser(c echo.Context) error {
	var body initializeUserPayload
	if err := c.Bind(&body); err != nil {
		return errInvalidBody
	}

	if len(body.UserIDs) != 1 || strings.TrimSpace(body.UserIDs[0]) == "" {
		return errSingleUserID
	}
	userID := body.UserIDs[0]
	key := idempotencyKey{route: c.Path(), key: swag.StringValue(body.IdempotencyKey)}

	s.mu.Lock()
	defer s.mu.Unlock()

	if replay, ok := s.idempotency[key]; ok && key.key != "" {
		return c.JSON(http.StatusCreated, dataEnvelope{Data: replay})
	}

	if _, exists := s.challenges[userID]; exists {
		return errUserAlreadyInitialized
	}

	challengeID := uuid.NewString()
	s.challenges[userID] = challengeID

	data := map[string]string{"challengeId": challengeID}
	if key.key != "" {
		s.idempotency[key] = data
	}

	log.Debug().Str("user_id", userID).Str("challenge_id", challengeID).Msg("Sandbox initialized user")

	return c.JSON(http.StatusCreated, dataEnvelope{Data: data})
}

func (s *Server) postCreateWallet(c echo.Context) error {
	var body createWalletPayload
	if err := c.Bind(&body); err != nil {
		return errInvalidBody
	}

	userToken := swag.StringValue(body.UserToken)
	if userToken == "" {
		return errMissingUserToken
	}

	accountType := swag.StringValue(body.AccountType)
	if accountType == "" {
		accountType = config.AccountTypeEOA
	}
	if accountType != config.AccountTypeSCA && accountType != config.AccountTypeEOA {
		return errInvalidAccountType
	}

	if len(body.Blockchains) == 0 {
		return errMissingBlockchains
	}

	key := idempotencyKey{route: c.Path(), key: swag.StringValue(body.IdempotencyKey)}

	s.mu.Lock()
	defer s.mu.Unlock()

	if replay, ok := s.idempotency[key]; ok && key.key != "" {
		return c.JSON(http.StatusCreated, dataEnvelope{Data: replay})
	}

	address, err := randomAddress()
	if err != nil {
		return err
	}

	now := s.clock.Now().UTC().Format("2006-01-02T15:04:05Z")
	w := &wallet{
		ID:          uuid.NewString(),
		State:       "LIVE",
		UserToken:   userToken,
		Address:     address,
		AccountType: accountType,
		Blockchains: body.Blockchains,
		CreateDate:  now,
		UpdateDate:  now,
	}
	s.wallets[w.ID] = w

	if key.key != "" {
		s.idempotency[key] = w
	}

	log.Debug().Str("wallet_id", w.ID).Str("account_type", accountType).Msg("Sandbox created wallet")

	return c.JSON(http.StatusCreated, dataEnvelope{Data: w})
}

func (s *Server) getWallet(c echo.Context) error {
	id := c.Param("id")

	s.mu.Lock()
	w, ok := s.wallets[id]
	s.mu.Unlock()

	if !ok {
		return errWalletNotFound
	}

	return c.JSON(http.StatusOK, dataEnvelope{Data: map[string]any{"wallet": w}})
}

// randomAddress derives an EVM address from a throwaway key. The key is never
// stored; sandbox wallets cannot sign.
func randomAddress() (string, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return "", err
	}

	return crypto.PubkeyToAddress(key.PublicKey).Hex(), nil
}
