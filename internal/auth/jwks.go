package auth

import (
	"context"
	"fmt"

	"github.com/MicahParks/keyfunc/v3"
)

// NewCognitoKeySource serves the signing keys of a user pool. The JWKS is
// cached, refreshed in the background until ctx is done, and refetched
// (rate limited) when a token names an unknown kid.
func NewCognitoKeySource(ctx context.Context, region, userPoolID string) (keyfunc.Keyfunc, error) {
	return NewKeySourceFromURL(ctx, fmt.Sprintf(jwksURLFmt, region, userPoolID))
}

func NewKeySourceFromURL(ctx context.Context, url string) (keyfunc.Keyfunc, error) {
	k, err := keyfunc.NewDefaultCtx(ctx, []string{url})
	if err != nil {
		return nil, fmt.Errorf(msgFailedLoadJWKSFmt, url, err)
	}
	return k, nil
}
