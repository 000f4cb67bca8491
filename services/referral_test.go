package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReferralCodeRoundTrip(t *testing.T) {
	for _, id := range []uint{1, 42, 99999} {
		code := EncodeReferralCode(id)
		got, err := DecodeReferralCode(code)
		require.NoError(t, err)
		require.Equal(t, id, got)
	}
}

func TestDecodeReferralCodeRejectsGarbage(t *testing.T) {
	for _, code := range []string{"", "not-base64!!", "bWg6MA", "aGk6NQ"} {
		_, err := DecodeReferralCode(code)
		require.Error(t, err, "code %q should not decode", code)
	}
}
