package circle

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

// InitializeUser registers userID with the provider and returns the challenge
// the user has to complete. A repeated initialization is reported as
// ErrUserAlreadyInitialized, a response without challenge id as ErrAbsent.
func (c *Client) InitializeUser(ctx context.Context, userID string) (*Challenge, error) {
	result, err := c.Request(ctx, http.MethodPost, EndpointInitializeUser, InitializeUserRequest{
		UserIDs:        []string{userID},
		IdempotencyKey: c.newIdempotencyKey(),
	})
	if err != nil {
		return nil, err
	}

	var challenge Challenge
	if err := result.Decode(&challenge); err != nil {
		if remoteErr, ok := errorsAsRemote(err); ok && isAlreadyInitialized(remoteErr) {
			return nil, errors.WithMessage(ErrUserAlreadyInitialized, remoteErr.Error())
		}

		return nil, errors.Wrap(err, "failed to initialize user")
	}

	if challenge.ID == "" {
		return nil, errors.Wrap(ErrAbsent, "failed to initialize user: missing challengeId")
	}

	return &challenge, nil
}

func isAlreadyInitialized(e *RemoteError) bool {
	return e.Code == codeUserAlreadyInitialized || e.StatusCode == http.StatusConflict
}
