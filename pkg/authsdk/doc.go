/*
Package authsdk is the client SDK and wire contract of the adminhub API.

The request and response types in this package are shared with the server
handlers, so their json and validate tags define the API.

# SDKClient vs Session

SDKClient covers the unauthenticated endpoints and creates sessions:

	client := authsdk.NewSDKClient("https://admin.example.com")

	session, err := client.LogInSession(ctx, "alice", "correct-horse")

Session keeps the tokens of a logged in user and renews the short lived
access token with createNewAccessToken before it expires.

# Two factor login

An account with MFA enabled logs in without full access. ValidateOTP
verifies the TOTP code and then renews the access token:

	session, err := client.LogInSession(ctx, "alice", "correct-horse")
	if err != nil {
		return err
	}
	if session.User().MFAEnabled {
		if err := session.ValidateOTP(ctx, code); err != nil {
			return err
		}
	}

Enrollment works the same way with StartMFASetup and FinishMFASetup.

# Errors

Failures reported by the server are returned as *APIError. Note that an
invalid OTP code is reported with HTTP 200 and error set to true:

	var apiErr *authsdk.APIError
	if errors.As(err, &apiErr) {
		log.Println(apiErr.StatusCode, apiErr.Message)
	}
*/
package authsdk
