package types

const (
	ContextUserKey  = "user"
	ContextTokenKey = "access_token"
)

const (
	MessageVerificationSent = "Verification email was sent to your email address."
	MessageVerificationLink = "Verification link sent!"
	MessageEmailVerified    = "Email verified."
	MessageNotVerified      = "Your email address is not verified."
	MessageLoginInvalid     = "Login information is invalid."
	MessageUserVerification = "Verification email was sent to user`s email address."
)
