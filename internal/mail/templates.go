package mail

import "fmt"

func VerificationMessage(name, email, link string) Message {
	return Message{
		To:      email,
		Subject: "Verify Email Address",
		Body: fmt.Sprintf(`Hello %s,

Please click the link below to verify your email address.

%s

If you did not create an account, no further action is required.
`, name, link),
	}
}
