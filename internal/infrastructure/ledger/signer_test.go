package ledger

import (
	"crypto/ed25519"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"
)

func TestParseAdminKey(t *testing.T) {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i)
	}

	t.Run("base64 seed", func(t *testing.T) {
		s, err := ParseAdminKey(base64.StdEncoding.EncodeToString(seed))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(s.Address(), "0x"))
		assert.Len(t, s.Address(), 66)
	})

	t.Run("base64 flag-prefixed key", func(t *testing.T) {
		plain, err := ParseAdminKey(base64.StdEncoding.EncodeToString(seed))
		require.NoError(t, err)

		flagged, err := ParseAdminKey(base64.StdEncoding.EncodeToString(append([]byte{0x00}, seed...)))
		require.NoError(t, err)

		assert.Equal(t, plain.Address(), flagged.Address())
	})

	t.Run("hex seed", func(t *testing.T) {
		s, err := ParseAdminKey("0x000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
		require.NoError(t, err)

		plain, err := ParseAdminKey(base64.StdEncoding.EncodeToString(seed))
		require.NoError(t, err)
		assert.Equal(t, plain.Address(), s.Address())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := ParseAdminKey("!!!not-a-key!!!")
		assert.Error(t, err)
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		_, err := ParseAdminKey(base64.StdEncoding.EncodeToString(seed[:16]))
		assert.Error(t, err)
	})

	t.Run("rejects empty", func(t *testing.T) {
		_, err := ParseAdminKey("")
		assert.Error(t, err)
	})
}

func TestSignTransaction_VerifiesUnderIntent(t *testing.T) {
	seed := make([]byte, 32)
	s, err := ParseAdminKey(base64.StdEncoding.EncodeToString(seed))
	require.NoError(t, err)

	txBytes := []byte("transaction-payload")
	serialized := s.SignTransaction(txBytes)

	raw, err := base64.StdEncoding.DecodeString(serialized)
	require.NoError(t, err)
	require.Len(t, raw, 97)
	assert.Equal(t, byte(0x00), raw[0])

	sig := raw[1:65]
	pub := ed25519.PublicKey(raw[65:])

	digest := blake2b.Sum256(append([]byte{0, 0, 0}, txBytes...))
	assert.True(t, ed25519.Verify(pub, digest[:], sig))
}

func TestDecodeBech32(t *testing.T) {
	// Flag byte plus 32-byte seed encoded the way sui keytool exports keys.
	// "suiprivkey" + the 5-bit expansion of 33 zero bytes.
	encoded := "suiprivkey1" + strings.Repeat("q", 53) + "qqqqqq"

	raw, err := decodeBech32(encoded, "suiprivkey")
	require.NoError(t, err)
	require.Len(t, raw, 33)
	assert.Equal(t, byte(0x00), raw[0])
}

func TestDecodeBech32_WrongPrefix(t *testing.T) {
	_, err := decodeBech32("bc1qqqqqqqqqqqqq", "suiprivkey")
	assert.Error(t, err)
}
