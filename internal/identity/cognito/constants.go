package cognito

import "fmt"

const (
	attrEmail         = "email"
	attrEmailVerified = "email_verified"
	paramUsername     = "USERNAME"
	paramPassword     = "PASSWORD"

	exportUserPoolID = "CognitoUserPoolId"
	exportClientID   = "CognitoClientId"

	errUserAlreadyExists    = "user already exists"
	errPoolDetailsNotFound  = "cognito details not found"
	errUserNotCreated       = "user could not be created"
	errMissingIDToken       = "authentication result has no id token"
	errFailedCreateUserFmt  = "failed to create user: %w"
	errFailedSetPasswordFmt = "failed to set user password: %w"
	errFailedLoginFmt       = "failed to authenticate user: %w"
	errFailedDescribeFmt    = "failed to describe stack %s: %w"
)

var (
	errFailedCreateUser  = func(err error) error { return fmt.Errorf(errFailedCreateUserFmt, err) }
	errFailedSetPassword = func(err error) error { return fmt.Errorf(errFailedSetPasswordFmt, err) }
	errFailedLogin       = func(err error) error { return fmt.Errorf(errFailedLoginFmt, err) }
	errFailedDescribe    = func(stack string, err error) error { return fmt.Errorf(errFailedDescribeFmt, stack, err) }
)
