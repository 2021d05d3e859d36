package handler

import (
	"context"
	"net/http"
	"testing"

	apperrors "invoice-service/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdentity struct {
	signups  []string
	password string
	token    string
	err      error
}

func (f *fakeIdentity) Signup(_ context.Context, email, password string) error {
	if f.err != nil {
		return f.err
	}
	f.signups = append(f.signups, email)
	f.password = password
	return nil
}

func (f *fakeIdentity) Login(_ context.Context, _, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}

func TestSignup(t *testing.T) {
	identity := &fakeIdentity{}

	c, rec := newTestContext(http.MethodPost, "/users/signup", `{"email":" Jane@Example.com ","password":"secret1"}`, "")
	require.NoError(t, NewUserHandler(identity).Signup(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []string{"jane@example.com"}, identity.signups)

	var resp MessageResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "user created: jane@example.com", resp.Message)
}

func TestSignupValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bad email", body: `{"email":"nope","password":"secret1"}`},
		{name: "short password", body: `{"email":"a@b.io","password":"123"}`},
		{name: "unknown field", body: `{"email":"a@b.io","password":"secret1","role":"admin"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity := &fakeIdentity{}
			c, rec := newTestContext(http.MethodPost, "/users/signup", tt.body, "")

			require.NoError(t, NewUserHandler(identity).Signup(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, identity.signups)
		})
	}
}

func TestSignupExistingUser(t *testing.T) {
	identity := &fakeIdentity{err: apperrors.Conflict("user already exists")}

	c, _ := newTestContext(http.MethodPost, "/users/signup", `{"email":"a@b.io","password":"secret1"}`, "")
	err := NewUserHandler(identity).Signup(c)

	code, _ := MapToPublicError(err)
	assert.Equal(t, http.StatusConflict, code)
}

func TestLogin(t *testing.T) {
	identity := &fakeIdentity{token: "id-token"}

	c, rec := newTestContext(http.MethodPost, "/users/login", `{"email":"a@b.io","password":"secret1"}`, "")
	require.NoError(t, NewUserHandler(identity).Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp LoginResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "id-token", resp.Token)
	assert.Equal(t, "user authenticated: a@b.io", resp.Message)
}

func TestLoginInvalidCredentials(t *testing.T) {
	identity := &fakeIdentity{err: apperrors.InvalidCredentials()}

	c, _ := newTestContext(http.MethodPost, "/users/login", `{"email":"a@b.io","password":"wrong-pass"}`, "")
	err := NewUserHandler(identity).Login(c)

	code, _ := MapToPublicError(err)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestLoginInvalidInput(t *testing.T) {
	c, rec := newTestContext(http.MethodPost, "/users/login", `{"email":"","password":"secret1"}`, "")
	require.NoError(t, NewUserHandler(&fakeIdentity{}).Login(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), msgInvalidInput)
}
