package cognito

import (
	"context"
	"errors"

	apperrors "invoice-service/pkg/errors"
	"invoice-service/pkg/logger"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	cip "github.com/aws/aws-sdk-go/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go/service/cognitoidentityprovider/cognitoidentityprovideriface"
	"go.uber.org/zap"
)

// Pool names the user pool and the app client used for admin auth flows.
type Pool struct {
	UserPoolID string
	ClientID   string
}

// Service registers and authenticates users against a Cognito user pool.
// Emails are the usernames.
type Service struct {
	idp    cognitoidentityprovideriface.CognitoIdentityProviderAPI
	pool   Pool
	logger *zap.Logger
}

func NewService(idp cognitoidentityprovideriface.CognitoIdentityProviderAPI, pool Pool, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{idp: idp, pool: pool, logger: logger}
}

// Signup creates a confirmed user with a permanent password. No invitation
// message is sent.
func (s *Service) Signup(ctx context.Context, email, password string) error {
	out, err := s.idp.AdminCreateUserWithContext(ctx, &cip.AdminCreateUserInput{
		UserPoolId: aws.String(s.pool.UserPoolID),
		Username:   aws.String(email),
		UserAttributes: []*cip.AttributeType{
			{Name: aws.String(attrEmail), Value: aws.String(email)},
			{Name: aws.String(attrEmailVerified), Value: aws.String("true")},
		},
		MessageAction: aws.String(cip.MessageActionTypeSuppress),
	})
	if err != nil {
		if hasCode(err, cip.ErrCodeUsernameExistsException) {
			return apperrors.Conflict(errUserAlreadyExists)
		}
		return errFailedCreateUser(err)
	}
	if out.User == nil {
		return apperrors.InternalServer(errUserNotCreated, nil)
	}

	_, err = s.idp.AdminSetUserPasswordWithContext(ctx, &cip.AdminSetUserPasswordInput{
		UserPoolId: aws.String(s.pool.UserPoolID),
		Username:   aws.String(email),
		Password:   aws.String(password),
		Permanent:  aws.Bool(true),
	})
	if err != nil {
		if hasCode(err, cip.ErrCodeInvalidPasswordException) {
			return apperrors.Validation(awsMessage(err))
		}
		return errFailedSetPassword(err)
	}

	s.logger.Info("user signed up", zap.String("email", logger.MaskEmail(email)))
	return nil
}

// Login returns the ID token issued for the credentials.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	out, err := s.idp.AdminInitiateAuthWithContext(ctx, &cip.AdminInitiateAuthInput{
		AuthFlow:   aws.String(cip.AuthFlowTypeAdminNoSrpAuth),
		UserPoolId: aws.String(s.pool.UserPoolID),
		ClientId:   aws.String(s.pool.ClientID),
		AuthParameters: map[string]*string{
			paramUsername: aws.String(email),
			paramPassword: aws.String(password),
		},
	})
	if err != nil {
		if hasCode(err, cip.ErrCodeNotAuthorizedException) || hasCode(err, cip.ErrCodeUserNotFoundException) {
			s.logger.Info("login rejected", zap.String("email", logger.MaskEmail(email)))
			return "", apperrors.InvalidCredentials()
		}
		return "", errFailedLogin(err)
	}

	if out.AuthenticationResult == nil || aws.StringValue(out.AuthenticationResult.IdToken) == "" {
		return "", apperrors.InternalServer(errMissingIDToken, nil)
	}

	return aws.StringValue(out.AuthenticationResult.IdToken), nil
}

func hasCode(err error, code string) bool {
	var aerr awserr.Error
	return errors.As(err, &aerr) && aerr.Code() == code
}

func awsMessage(err error) string {
	var aerr awserr.Error
	if errors.As(err, &aerr) {
		return aerr.Message()
	}
	return err.Error()
}
