package lobby

import (
	"crypto/rand"
	"fmt"
	"strings"
)

const (
	codeLength = 6
	// no 0/O or 1/I so codes survive being read out loud
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// NewCode returns a random upper-case game code.
func NewCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random code: %w", err)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}

// ValidCode reports whether id looks like a code NewCode could produce.
func ValidCode(id string) bool {
	if len(id) != codeLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if strings.IndexByte(codeAlphabet, id[i]) < 0 {
			return false
		}
	}
	return true
}
