package auth

const (
	ContextKeyUserID = "user_id"
	ContextKeyEmail  = "email"

	jsonKeyError = "error"

	headerAuthorization = "Authorization"

	bearerScheme    = "bearer"
	authHeaderParts = 2

	tokenUseID = "id"

	jwksURLFmt = "https://cognito-idp.%s.amazonaws.com/%s/.well-known/jwks.json"
	issuerFmt  = "https://cognito-idp.%s.amazonaws.com/%s"
)

const (
	msgMissingAuthorization    = "missing authorization token"
	msgInvalidOrExpiredToken   = "invalid or expired token"
	msgUserNotAuthenticated    = "user not authenticated"
	msgInvalidUserIDCtx        = "invalid user ID in context"
	msgUnexpectedSigningMethod = "unexpected signing method: %v"
	msgTokenParseFailed        = "failed to parse token: %w"
	msgInvalidTokenClaims      = "invalid token claims"
	msgMissingKeyID            = "token has no key id"
	msgUnexpectedTokenUse      = "unexpected token_use %q"
	msgMissingSubject          = "token has no subject"
	msgUnknownKeyID            = "unknown signing key %q"
	msgFailedLoadJWKSFmt       = "failed to load JWKS from %s: %w"
)
