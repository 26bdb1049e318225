package auth

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidSignature = errors.New("Invalid signature.")

type verificationClaims struct {
	Hash string `json:"hash"`
	jwt.RegisteredClaims
}

// LinkSigner issues and checks the signed, time-limited email verification
// links of the form {baseURL}/api/email/verify/{id}/{hash}?signature=...
type LinkSigner struct {
	secret  []byte
	baseURL string
	ttl     time.Duration
	now     func() time.Time
}

func NewLinkSigner(secret, baseURL string, ttl time.Duration) *LinkSigner {
	return &LinkSigner{
		secret:  []byte(secret),
		baseURL: strings.TrimRight(baseURL, "/"),
		ttl:     ttl,
		now:     time.Now,
	}
}

// EmailHash is the {hash} path segment of a verification link.
func EmailHash(email string) string {
	sum := sha1.Sum([]byte(email))
	return hex.EncodeToString(sum[:])
}

func (s *LinkSigner) Sign(userID uint, email string) (string, error) {
	now := s.now()
	claims := verificationClaims{
		Hash: EmailHash(email),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *LinkSigner) VerificationURL(userID uint, email string) (string, error) {
	signature, err := s.Sign(userID, email)
	if err != nil {
		return "", fmt.Errorf("signing verification link: %w", err)
	}

	return fmt.Sprintf("%s/api/email/verify/%d/%s?signature=%s",
		s.baseURL, userID, EmailHash(email), url.QueryEscape(signature)), nil
}

// Verify checks that signature was issued for exactly this id and hash and
// has not expired.
func (s *LinkSigner) Verify(id, hash, signature string) error {
	if signature == "" {
		return ErrInvalidSignature
	}

	claims := &verificationClaims{}
	token, err := jwt.ParseWithClaims(signature, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil || !token.Valid {
		return ErrInvalidSignature
	}

	if claims.Subject != id || claims.Hash != hash {
		return ErrInvalidSignature
	}

	return nil
}
