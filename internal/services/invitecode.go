package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

const (
	inviteCodeAlphabet    = "abcdefghijklmnopqrstuvwxyz0123456789"
	inviteCodeLength      = 8
	maxInviteCodeAttempts = 5
)

var inviteCodePattern = regexp.MustCompile(`^[a-z0-9]{8}$`)

func GenerateInviteCode() (string, error) {
	alphabetLen := big.NewInt(int64(len(inviteCodeAlphabet)))
	b := make([]byte, inviteCodeLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate invite code: %w", err)
		}
		b[i] = inviteCodeAlphabet[n.Int64()]
	}
	return string(b), nil
}

// NormalizeInviteCode lower-cases code and reports whether it is well formed.
func NormalizeInviteCode(code string) (string, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	return code, inviteCodePattern.MatchString(code)
}
