// Package invite implements the reversible short-code scheme used to share
// project membership. A code is a deterministic, salted encoding of the
// project's small numeric invite ID, so the same project always yields the
// same code and no code table has to be persisted.
//
// This is deliberately NOT a capability token: anyone who knows the scheme
// and the salt can mint plausible codes. The salt is a deployment secret and
// redeeming a code still goes through server-side authorization, so the
// value at stake is a join request, nothing more. Do not swap this for a
// cryptographic token without rethinking the whole membership flow.
package invite

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"strings"
)

// CodeLength is the fixed width of every invite code.
const CodeLength = 6

// MaxEventID is the largest invite ID the 6-character code can carry.
// 6 characters of base32 hold 30 bits: 22 bits of payload plus an 8-bit
// keyed checksum.
const MaxEventID = 1<<22 - 1

// alphabet is Crockford base32: no I, L, O or U, so codes survive being
// read aloud or typed from a phone screen.
const alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

var (
	// ErrInvalidCode is returned for any code that was not produced by
	// Encode with the same salt: wrong length, foreign characters, or a
	// checksum mismatch. It is a data-level outcome, distinct from any
	// transport failure.
	ErrInvalidCode = errors.New("invalid invite code")

	// ErrEventIDRange is returned when an invite ID does not fit the code.
	ErrEventIDRange = errors.New("invite id out of range")
)

// Codec encodes and decodes invite codes under a fixed secret salt.
// Both directions are pure; a Codec is safe for concurrent use.
type Codec struct {
	salt []byte
	mask uint32
}

// NewCodec creates a codec bound to the given salt. Two codecs with the
// same salt are interchangeable; codecs with different salts reject each
// other's codes.
func NewCodec(salt string) *Codec {
	c := &Codec{salt: []byte(salt)}
	c.mask = binary.BigEndian.Uint32(c.hmac([]byte("invite.mask"))) & MaxEventID
	return c
}

// Encode turns an invite ID into its fixed-width code.
func (c *Codec) Encode(eventID uint32) (string, error) {
	if eventID > MaxEventID {
		return "", ErrEventIDRange
	}

	masked := eventID ^ c.mask
	value := masked<<8 | uint32(c.checksum(masked))

	// 30 bits, most significant character first.
	buf := make([]byte, CodeLength)
	for i := CodeLength - 1; i >= 0; i-- {
		buf[i] = alphabet[value&31]
		value >>= 5
	}
	return string(buf), nil
}

// Decode is the inverse of Encode. It returns ErrInvalidCode for anything
// not produced with the same salt.
func (c *Codec) Decode(code string) (uint32, error) {
	code = normalize(code)
	if len(code) != CodeLength {
		return 0, ErrInvalidCode
	}

	var value uint32
	for i := 0; i < CodeLength; i++ {
		d := strings.IndexByte(alphabet, code[i])
		if d < 0 {
			return 0, ErrInvalidCode
		}
		value = value<<5 | uint32(d)
	}

	masked := value >> 8
	if byte(value) != c.checksum(masked) {
		return 0, ErrInvalidCode
	}
	return masked ^ c.mask, nil
}

// checksum derives the keyed 8-bit check for a masked payload.
func (c *Codec) checksum(masked uint32) byte {
	var payload [4]byte
	binary.BigEndian.PutUint32(payload[:], masked)
	return c.hmac(payload[:])[0]
}

func (c *Codec) hmac(msg []byte) []byte {
	mac := hmac.New(sha256.New, c.salt)
	mac.Write(msg)
	return mac.Sum(nil)
}

// normalize uppercases the code and folds the characters Crockford base32
// treats as aliases, so hand-typed codes are forgiven the usual confusions.
func normalize(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	r := strings.NewReplacer("O", "0", "I", "1", "L", "1")
	return r.Replace(code)
}
