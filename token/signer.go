package token

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	// ErrBadPrivateKey means the supplied key material is not a PKCS8
	// P-256 private key.
	ErrBadPrivateKey = errors.New("apns: bad provider private key")
)

// Signer produces ES256-signed provider tokens for one team/key identity.
// The key is parsed and validated once, at construction.
type Signer struct {
	teamId     string
	keyId      string
	privateKey *ecdsa.PrivateKey
}

// NewSigner parses the PKCS8-encoded private key (raw DER or PEM) and
// returns a signer bound to the given team and key ids.
func NewSigner(teamId, keyId string, privateKey []byte) (*Signer, error) {
	key, err := parsePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	return &Signer{
		teamId:     teamId,
		keyId:      keyId,
		privateKey: key,
	}, nil
}

// SignAt returns a provider token with the given issue time. Pure apart
// from the signature nonce; no I/O.
func (s *Signer) SignAt(issuedAt time.Time) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodES256, jwt.MapClaims{
		"iss": s.teamId,
		"iat": issuedAt.Unix(),
	})
	t.Header["kid"] = s.keyId
	return t.SignedString(s.privateKey)
}

func parsePrivateKey(data []byte) (*ecdsa.PrivateKey, error) {
	if block, _ := pem.Decode(data); block != nil {
		data = block.Bytes
	}
	private, err := x509.ParsePKCS8PrivateKey(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPrivateKey, err)
	}
	key, ok := private.(*ecdsa.PrivateKey)
	if !ok || key.Curve != elliptic.P256() {
		return nil, ErrBadPrivateKey
	}
	return key, nil
}
