// internal/app/banking/codec.go
//
// Field-level encryption for stored bank details. Values are sealed with
// AES-256-GCM and persisted as hex(nonce):hex(ciphertext); the key is derived
// from the configured secret with SHA-256 so operators can rotate a
// passphrase without minting raw key material.
package banking

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shuzaifak/crowd/internal/domain/models"
)

// SensitiveFields are the bank-detail fields encrypted at rest and masked in
// every API response.
var SensitiveFields = []string{
	FieldAccountNumber,
	FieldRoutingNumber,
	FieldSortCode,
	FieldIBAN,
	FieldIFSCCode,
	FieldBSB,
}

// maskVisible is how many trailing characters survive masking.
const maskVisible = 4

// Codec encrypts, decrypts, and masks sensitive bank-account fields.
// A Codec is safe for concurrent use.
type Codec struct {
	aead cipher.AEAD
}

// NewCodec derives an AES-256 key from secret and returns a ready Codec.
func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("banking: encryption secret must not be empty")
	}
	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("banking: init cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("banking: init gcm: %w", err)
	}
	return &Codec{aead: aead}, nil
}

// Encrypt seals plain and returns the stored form hex(nonce):hex(ciphertext).
// The separator never collides with the payload: hex digits cannot contain
// ':', whatever the plaintext held.
func (c *Codec) Encrypt(plain string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", &CodecError{Op: "encrypt", Err: err}
	}
	sealed := c.aead.Seal(nil, nonce, []byte(plain), nil)
	return hex.EncodeToString(nonce) + ":" + hex.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Any failure, whether a malformed stored value or
// a key that does not authenticate, surfaces as a *CodecError.
func (c *Codec) Decrypt(stored string) (string, error) {
	nonceHex, sealedHex, ok := strings.Cut(stored, ":")
	if !ok {
		return "", &CodecError{Op: "decrypt", Err: errors.New("missing nonce separator")}
	}
	nonce, err := hex.DecodeString(nonceHex)
	if err != nil {
		return "", &CodecError{Op: "decrypt", Err: fmt.Errorf("nonce: %w", err)}
	}
	if len(nonce) != c.aead.NonceSize() {
		return "", &CodecError{Op: "decrypt", Err: errors.New("bad nonce length")}
	}
	sealed, err := hex.DecodeString(sealedHex)
	if err != nil {
		return "", &CodecError{Op: "decrypt", Err: fmt.Errorf("ciphertext: %w", err)}
	}
	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", &CodecError{Op: "decrypt", Err: err}
	}
	return string(plain), nil
}

// Mask decrypts a stored value and masks all but its trailing characters,
// e.g. "******6789".
func (c *Codec) Mask(stored string) (string, error) {
	plain, err := c.Decrypt(stored)
	if err != nil {
		return "", err
	}
	return MaskValue(plain), nil
}

// MaskValue masks a plaintext value, keeping only the last few characters.
// Values at or below the visible length are masked entirely.
func MaskValue(plain string) string {
	runes := []rune(plain)
	if len(runes) <= maskVisible {
		return strings.Repeat("*", len(runes))
	}
	return strings.Repeat("*", len(runes)-maskVisible) + string(runes[len(runes)-maskVisible:])
}

// EncryptAccount seals every populated sensitive field of a in place.
// Non-sensitive fields (holder name, bank name, country) stay readable.
func (c *Codec) EncryptAccount(a *models.BankAccount) error {
	for _, f := range sensitiveFieldPtrs(a) {
		if *f.ptr == "" {
			continue
		}
		sealed, err := c.Encrypt(*f.ptr)
		if err != nil {
			return err
		}
		*f.ptr = sealed
	}
	return nil
}

// DecryptAccount reverses EncryptAccount in place. It is used when a
// plaintext view is genuinely needed (payout snapshots, exports); API
// responses go through MaskAccount instead.
func (c *Codec) DecryptAccount(a *models.BankAccount) error {
	for _, f := range sensitiveFieldPtrs(a) {
		if *f.ptr == "" {
			continue
		}
		plain, err := c.Decrypt(*f.ptr)
		if err != nil {
			return err
		}
		*f.ptr = plain
	}
	return nil
}

// MaskAccount replaces every populated sensitive field of a with its masked
// plaintext form. Callers pass a copy; the stored record keeps ciphertext.
func (c *Codec) MaskAccount(a *models.BankAccount) error {
	for _, f := range sensitiveFieldPtrs(a) {
		if *f.ptr == "" {
			continue
		}
		masked, err := c.Mask(*f.ptr)
		if err != nil {
			return err
		}
		*f.ptr = masked
	}
	return nil
}

// Snapshot freezes the masked destination details of an account, as stored on
// a payout. Accounts identified by IBAN (no separate account number) snapshot
// the masked IBAN instead.
func (c *Codec) Snapshot(a models.BankAccount) (models.BankSnapshot, error) {
	stored := a.AccountNumber
	if stored == "" {
		stored = a.IBAN
	}
	masked := ""
	if stored != "" {
		var err error
		if masked, err = c.Mask(stored); err != nil {
			return models.BankSnapshot{}, err
		}
	}
	return models.BankSnapshot{
		BankName:      a.BankName,
		Country:       a.Country,
		AccountNumber: masked,
	}, nil
}

type fieldPtr struct {
	name string
	ptr  *string
}

// sensitiveFieldPtrs pairs each sensitive field name with its struct slot,
// in SensitiveFields order so errors and masking are deterministic.
func sensitiveFieldPtrs(a *models.BankAccount) []fieldPtr {
	return []fieldPtr{
		{FieldAccountNumber, &a.AccountNumber},
		{FieldRoutingNumber, &a.RoutingNumber},
		{FieldSortCode, &a.SortCode},
		{FieldIBAN, &a.IBAN},
		{FieldIFSCCode, &a.IFSCCode},
		{FieldBSB, &a.BSB},
	}
}
