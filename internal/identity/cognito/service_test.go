package cognito

import (
	"context"
	"testing"

	apperrors "invoice-service/pkg/errors"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	cip "github.com/aws/aws-sdk-go/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go/service/cognitoidentityprovider/cognitoidentityprovideriface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPool = Pool{UserPoolID: "us-east-1_pool", ClientID: "client-123"}

type fakeIDP struct {
	cognitoidentityprovideriface.CognitoIdentityProviderAPI

	createInputs   []*cip.AdminCreateUserInput
	passwordInputs []*cip.AdminSetUserPasswordInput
	authInputs     []*cip.AdminInitiateAuthInput

	createErr   error
	passwordErr error
	authErr     error
	idToken     string
}

func (f *fakeIDP) AdminCreateUserWithContext(_ aws.Context, in *cip.AdminCreateUserInput, _ ...request.Option) (*cip.AdminCreateUserOutput, error) {
	f.createInputs = append(f.createInputs, in)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &cip.AdminCreateUserOutput{User: &cip.UserType{Username: in.Username}}, nil
}

func (f *fakeIDP) AdminSetUserPasswordWithContext(_ aws.Context, in *cip.AdminSetUserPasswordInput, _ ...request.Option) (*cip.AdminSetUserPasswordOutput, error) {
	f.passwordInputs = append(f.passwordInputs, in)
	if f.passwordErr != nil {
		return nil, f.passwordErr
	}
	return &cip.AdminSetUserPasswordOutput{}, nil
}

func (f *fakeIDP) AdminInitiateAuthWithContext(_ aws.Context, in *cip.AdminInitiateAuthInput, _ ...request.Option) (*cip.AdminInitiateAuthOutput, error) {
	f.authInputs = append(f.authInputs, in)
	if f.authErr != nil {
		return nil, f.authErr
	}
	return &cip.AdminInitiateAuthOutput{
		AuthenticationResult: &cip.AuthenticationResultType{IdToken: aws.String(f.idToken)},
	}, nil
}

func TestSignup(t *testing.T) {
	idp := &fakeIDP{}
	svc := NewService(idp, testPool, nil)

	require.NoError(t, svc.Signup(context.Background(), "ada@example.com", "secret1"))

	require.Len(t, idp.createInputs, 1)
	in := idp.createInputs[0]
	assert.Equal(t, testPool.UserPoolID, aws.StringValue(in.UserPoolId))
	assert.Equal(t, "ada@example.com", aws.StringValue(in.Username))
	assert.Equal(t, cip.MessageActionTypeSuppress, aws.StringValue(in.MessageAction))
	require.Len(t, in.UserAttributes, 2)
	assert.Equal(t, "email_verified", aws.StringValue(in.UserAttributes[1].Name))
	assert.Equal(t, "true", aws.StringValue(in.UserAttributes[1].Value))

	require.Len(t, idp.passwordInputs, 1)
	assert.True(t, aws.BoolValue(idp.passwordInputs[0].Permanent))
	assert.Equal(t, "secret1", aws.StringValue(idp.passwordInputs[0].Password))
}

func TestSignupExistingUser(t *testing.T) {
	idp := &fakeIDP{createErr: awserr.New(cip.ErrCodeUsernameExistsException, "exists", nil)}

	err := NewService(idp, testPool, nil).Signup(context.Background(), "ada@example.com", "secret1")

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Empty(t, idp.passwordInputs)
}

func TestSignupInvalidPassword(t *testing.T) {
	idp := &fakeIDP{passwordErr: awserr.New(cip.ErrCodeInvalidPasswordException, "Password does not conform to policy", nil)}

	err := NewService(idp, testPool, nil).Signup(context.Background(), "ada@example.com", "short")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.ErrorContains(t, err, "Password does not conform to policy")
}

func TestLogin(t *testing.T) {
	idp := &fakeIDP{idToken: "id.token.value"}

	token, err := NewService(idp, testPool, nil).Login(context.Background(), "ada@example.com", "secret1")

	require.NoError(t, err)
	assert.Equal(t, "id.token.value", token)
	require.Len(t, idp.authInputs, 1)
	in := idp.authInputs[0]
	assert.Equal(t, cip.AuthFlowTypeAdminNoSrpAuth, aws.StringValue(in.AuthFlow))
	assert.Equal(t, testPool.ClientID, aws.StringValue(in.ClientId))
	assert.Equal(t, "ada@example.com", aws.StringValue(in.AuthParameters["USERNAME"]))
}

func TestLoginRejected(t *testing.T) {
	for _, code := range []string{cip.ErrCodeNotAuthorizedException, cip.ErrCodeUserNotFoundException} {
		t.Run(code, func(t *testing.T) {
			idp := &fakeIDP{authErr: awserr.New(code, "nope", nil)}

			_, err := NewService(idp, testPool, nil).Login(context.Background(), "ada@example.com", "wrong")
			assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		})
	}
}

func TestLoginServiceFault(t *testing.T) {
	idp := &fakeIDP{authErr: awserr.New("InternalErrorException", "boom", nil)}

	_, err := NewService(idp, testPool, nil).Login(context.Background(), "ada@example.com", "secret1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
