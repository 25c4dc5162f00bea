package service

import (
	"context"
	"encoding/base64"
	"fmt"

	validation "github.com/jellydator/validation"
	"gocloud.dev/secrets"

	sessionDomain "github.com/codecollab/server/internal/session/domain"
	customValidation "github.com/codecollab/server/internal/validation"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// signingKeyLoader resolves the signing key from clear text or from a KMS
// encrypted ciphertext.
type signingKeyLoader struct {
	secret     string
	ciphertext string
	keyURI     string
}

// NewSigningKeyLoader creates a SigningKeyLoader.
//
// A non-empty secret wins. Otherwise ciphertext (base64) is decrypted with the
// keeper opened from keyURI. Supported URIs: gcpkms://, awskms://, azurekeyvault://,
// hashivault://, base64key://
func NewSigningKeyLoader(secret, ciphertext, keyURI string) SigningKeyLoader {
	return &signingKeyLoader{
		secret:     secret,
		ciphertext: ciphertext,
		keyURI:     keyURI,
	}
}

// Load returns the signing key or ErrSigningKeyMissing when none is configured.
func (l *signingKeyLoader) Load(ctx context.Context) ([]byte, error) {
	if l.secret != "" {
		return []byte(l.secret), nil
	}
	if l.ciphertext == "" {
		return nil, sessionDomain.ErrSigningKeyMissing
	}

	err := validation.Errors{
		"JWT_SECRET_CIPHERTEXT": validation.Validate(l.ciphertext, customValidation.Base64),
		"KMS_KEY_URI":           validation.Validate(l.keyURI, validation.Required, customValidation.KMSKeyURI),
	}.Filter()
	if err != nil {
		return nil, customValidation.WrapValidationError(err)
	}

	encrypted, err := base64.StdEncoding.DecodeString(l.ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decode signing key ciphertext: %w", err)
	}

	keeper, err := secrets.OpenKeeper(ctx, l.keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		_ = keeper.Close()
	}()

	key, err := keeper.Decrypt(ctx, encrypted)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt signing key: %w", err)
	}
	if len(key) == 0 {
		return nil, sessionDomain.ErrSigningKeyMissing
	}
	return key, nil
}
