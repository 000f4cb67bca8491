package services

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
)

const referralCodePrefix = "mh"

// EncodeReferralCode turns a user ID into an opaque shareable code.
func EncodeReferralCode(userID uint) string {
	raw := referralCodePrefix + ":" + strconv.FormatUint(uint64(userID), 10)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeReferralCode resolves a shareable code back to the referrer user ID.
func DecodeReferralCode(code string) (uint, error) {
	b, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(code))
	if err != nil {
		return 0, errors.New("invalid referral code")
	}
	parts := strings.SplitN(string(b), ":", 2)
	if len(parts) != 2 || parts[0] != referralCodePrefix {
		return 0, errors.New("invalid referral code")
	}
	id, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid referral code")
	}
	return uint(id), nil
}
