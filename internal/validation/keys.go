package validation

import (
	"encoding/base64"
	"strings"

	validation "github.com/jellydator/validation"
)

// kmsSchemes lists the keeper URL schemes with a registered gocloud driver.
var kmsSchemes = []string{"gcpkms://", "awskms://", "azurekeyvault://", "hashivault://", "base64key://"}

// Base64 accepts standard base64 with padding. Empty values pass; pair with Required.
var Base64 = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_base64_type", "must be a string")
	}
	if s == "" {
		return nil
	}
	if _, err := base64.StdEncoding.DecodeString(s); err != nil {
		return validation.NewError("validation_base64", "must be valid base64-encoded data")
	}
	return nil
})

// KMSKeyURI accepts keeper URLs whose scheme has a registered driver. Empty values pass.
var KMSKeyURI = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_kms_uri_type", "must be a string")
	}
	if s == "" {
		return nil
	}
	for _, scheme := range kmsSchemes {
		if strings.HasPrefix(s, scheme) && len(s) > len(scheme) {
			return nil
		}
	}
	return validation.NewError(
		"validation_kms_uri",
		"must start with one of "+strings.Join(kmsSchemes, ", "),
	)
})
