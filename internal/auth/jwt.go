package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the Cognito ID token claims the API relies on. The subject is
// the stable user id used as invoice owner.
type Claims struct {
	Email    string `json:"email"`
	TokenUse string `json:"token_use"`
	jwt.RegisteredClaims
}

// KeySource resolves the key a token was signed with. keyfunc.Keyfunc
// satisfies it.
type KeySource interface {
	KeyfuncCtx(ctx context.Context) jwt.Keyfunc
}

// TokenVerifier checks Cognito ID tokens: RS256 signature from the pool
// keys, issuer, audience (app client id), expiry and token_use.
type TokenVerifier struct {
	keys     KeySource
	issuer   string
	audience string
}

func NewTokenVerifier(keys KeySource, region, userPoolID, clientID string) *TokenVerifier {
	return &TokenVerifier{
		keys:     keys,
		issuer:   fmt.Sprintf(issuerFmt, region, userPoolID),
		audience: clientID,
	}
}

func (v *TokenVerifier) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf(msgUnexpectedSigningMethod, token.Header["alg"])
		}
		if kid, _ := token.Header["kid"].(string); kid == "" {
			return nil, errors.New(msgMissingKeyID)
		}
		return v.keys.KeyfuncCtx(ctx)(token)
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf(msgTokenParseFailed, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New(msgInvalidTokenClaims)
	}

	if claims.TokenUse != tokenUseID {
		return nil, fmt.Errorf(msgUnexpectedTokenUse, claims.TokenUse)
	}
	if claims.Subject == "" {
		return nil, errors.New(msgMissingSubject)
	}

	return claims, nil
}
