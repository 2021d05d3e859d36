package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rsaJWKSet(kid string, pub *rsa.PublicKey) []byte {
	set := map[string]any{
		"keys": []map[string]string{{
			"kid": kid,
			"kty": "RSA",
			"alg": "RS256",
			"use": "sig",
			"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
		}},
	}
	raw, _ := json.Marshal(set)
	return raw
}

func jwksServer(t *testing.T, body []byte, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(hits, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestVerifyWithJWKSet(t *testing.T) {
	key := newTestKey(t)
	keys, err := keyfunc.NewJWKSetJSON(rsaJWKSet(testKID, &key.PublicKey))
	require.NoError(t, err)

	verifier := NewTokenVerifier(keys, testRegion, testPoolID, testClientID)

	claims, err := verifier.Verify(context.Background(), signToken(t, key, testKID, validClaims()))
	require.NoError(t, err)
	assert.Equal(t, "sub-123", claims.Subject)

	_, err = verifier.Verify(context.Background(), signToken(t, newTestKey(t), testKID, validClaims()))
	assert.Error(t, err)
}

func TestVerifyWithRemoteJWKS(t *testing.T) {
	key := newTestKey(t)
	var hits int32
	srv := jwksServer(t, rsaJWKSet(testKID, &key.PublicKey), &hits)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	keys, err := NewKeySourceFromURL(ctx, srv.URL)
	require.NoError(t, err)
	verifier := NewTokenVerifier(keys, testRegion, testPoolID, testClientID)

	claims, err := verifier.Verify(context.Background(), signToken(t, key, testKID, validClaims()))
	require.NoError(t, err)
	assert.Equal(t, "sub-123", claims.Subject)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&hits), int32(1))

	reqCtx, reqCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer reqCancel()
	_, err = verifier.Verify(reqCtx, signToken(t, key, "kid-2", validClaims()))
	assert.Error(t, err)
}

func TestVerifyCancelledRequestDoesNotPoisonKeys(t *testing.T) {
	key := newTestKey(t)
	var hits int32
	srv := jwksServer(t, rsaJWKSet(testKID, &key.PublicKey), &hits)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	keys, err := NewKeySourceFromURL(ctx, srv.URL)
	require.NoError(t, err)
	verifier := NewTokenVerifier(keys, testRegion, testPoolID, testClientID)

	cancelled, cancelReq := context.WithCancel(context.Background())
	cancelReq()
	_, _ = verifier.Verify(cancelled, signToken(t, key, "kid-2", validClaims()))

	claims, err := verifier.Verify(context.Background(), signToken(t, key, testKID, validClaims()))
	require.NoError(t, err)
	assert.Equal(t, "sub-123", claims.Subject)
}
