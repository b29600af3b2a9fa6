// Package certificate signs and verifies response certificates.
//
// A certificate is an EdDSA JWT issued by the store's root key. It binds the
// full gRPC method name to the SHA-256 digest of the deterministically
// marshalled response message, so a client holding the root key can tell a
// response really came from the store it bootstrapped against.
package certificate

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cvboard/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/protobuf/proto"
)

type Claims struct {
	jwt.RegisteredClaims
	Method string `json:"method"`
	Digest string `json:"digest"`
}

// Digest returns the base64url SHA-256 of msg's deterministic encoding.
func Digest(msg proto.Message) (string, error) {
	b, err := proto.MarshalOptions{Deterministic: true}.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("marshal response: %w", err)
	}
	sum := sha256.Sum256(b)
	return base64.RawURLEncoding.EncodeToString(sum[:]), nil
}

func Sign(key ed25519.PrivateKey, method string, msg proto.Message, now time.Time) (string, error) {
	digest, err := Digest(msg)
	if err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, Claims{
		RegisteredClaims: jwt.RegisteredClaims{IssuedAt: jwt.NewNumericDate(now)},
		Method:           method,
		Digest:           digest,
	})
	return token.SignedString(key)
}

// Verify checks that token was signed by rootKey and covers method and msg.
// Every failure wraps common.ErrUntrusted.
func Verify(token string, rootKey ed25519.PublicKey, method string, msg proto.Message) error {
	if token == "" {
		return fmt.Errorf("%w: missing certificate", common.ErrUntrusted)
	}
	if len(rootKey) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: root key not available", common.ErrUntrusted)
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return rootKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}))
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUntrusted, err)
	}
	if !parsed.Valid {
		return fmt.Errorf("%w: invalid certificate", common.ErrUntrusted)
	}

	if claims.Method != method {
		return fmt.Errorf("%w: certificate issued for %s", common.ErrUntrusted, claims.Method)
	}
	digest, err := Digest(msg)
	if err != nil {
		return err
	}
	if claims.Digest != digest {
		return fmt.Errorf("%w: %v", common.ErrUntrusted, errDigestMismatch)
	}
	return nil
}

var errDigestMismatch = errors.New("response digest mismatch")
