// Package twofactor implements the second factor flows: RFC 6238 TOTP
// secrets with QR provisioning, and short lived email codes.
package twofactor

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
	"time"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"
)

// DefaultIssuer shows up in authenticator apps next to the account
const DefaultIssuer = "VornexZ Pay"

// EmailCodeTTL is how long an email code stays valid
const EmailCodeTTL = 10 * time.Minute

// GenerateSecretKey creates a new base32 TOTP secret for an account
func GenerateSecretKey(accountName string) (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      DefaultIssuer,
		AccountName: accountName,
	})
	if err != nil {
		return "", err
	}
	return key.Secret(), nil
}

// GetTOTPURI builds the otpauth:// provisioning URI for a secret
func GetTOTPURI(secret, accountName string) string {
	return fmt.Sprintf("otpauth://totp/%s:%s?secret=%s&issuer=%s",
		DefaultIssuer, accountName, secret, DefaultIssuer)
}

// ValidateTOTP checks a user supplied code against the stored secret
func ValidateTOTP(secret, code string) bool {
	return totp.Validate(code, secret)
}

// QRCodePNG renders the provisioning URI as a PNG image
func QRCodePNG(uri string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(uri, qrcode.Medium, size)
}

// QRCodeBase64 renders the provisioning URI as a data URI suitable
// for direct embedding in an img tag
func QRCodeBase64(uri string, size int) (string, error) {
	png, err := QRCodePNG(uri, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// GenerateEmailCode returns a 6 digit numeric one time code
func GenerateEmailCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
