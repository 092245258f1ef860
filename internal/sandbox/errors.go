package sandbox

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	codeInvalidInput           = 2
	codeUnauthorized           = 401
	codeUserAlreadyInitialized = 155106
	codeWalletNotFound         = 156001
)

// apiError is the provider's {"code","message"} error body.
type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(status int, code int, message string) *echo.HTTPError {
	return echo.NewHTTPError(status, apiError{Code: code, Message: message})
}

var (
	errInvalidBody            = newAPIError(http.StatusBadRequest, codeInvalidInput, "Invalid request body.")
	errSingleUserID           = newAPIError(http.StatusBadRequest, codeInvalidInput, "userIds must contain exactly one user id.")
	errMissingUserToken       = newAPIError(http.StatusBadRequest, codeInvalidInput, "userToken is required.")
	errInvalidAccountType     = newAPIError(http.StatusBadRequest, codeInvalidInput, "accountType must be one of SCA, EOA.")
	errMissingBlockchains     = newAPIError(http.StatusBadRequest, codeInvalidInput, "blockchains must not be empty.")
	errUnauthorized           = newAPIError(http.StatusUnauthorized, codeUnauthorized, "Malformed authorization. Are the credentials properly encoded?")
	errUserAlreadyInitialized = newAPIError(http.StatusConflict, codeUserAlreadyInitialized, "User already initialized.")
	errWalletNotFound         = newAPIError(http.StatusNotFound, codeWalletNotFound, "Cannot find the wallet.")
)
