package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signInitData signs a field set the way the platform does: key-sorted
// newline-joined pairs under the label-derived secret.
func signInitData(fields map[string]string, botToken string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+fields[k])
	}

	keyMAC := hmac.New(sha256.New, []byte(botToken))
	keyMAC.Write([]byte("WebAppData"))
	secret := keyMAC.Sum(nil)

	sigMAC := hmac.New(sha256.New, secret)
	sigMAC.Write([]byte(strings.Join(pairs, "\n")))
	return hex.EncodeToString(sigMAC.Sum(nil))
}

func encodeInitData(fields map[string]string, hash string) string {
	values := url.Values{}
	for k, v := range fields {
		values.Set(k, v)
	}
	values.Set("hash", hash)
	return values.Encode()
}

func TestVerifyInitDataValid(t *testing.T) {
	fields := map[string]string{
		"user":      `{"id":42,"username":"ann"}`,
		"auth_date": "1700000000",
	}
	raw := encodeInitData(fields, signInitData(fields, "s3cret"))

	assert.True(t, VerifyInitData(raw, "s3cret"))
}

func TestVerifyInitDataTamperedField(t *testing.T) {
	fields := map[string]string{
		"user":      `{"id":42,"username":"ann"}`,
		"auth_date": "1700000000",
	}
	raw := encodeInitData(fields, signInitData(fields, "s3cret"))

	tampered := strings.Replace(raw, "1700000000", "1700000001", 1)
	assert.False(t, VerifyInitData(tampered, "s3cret"))
}

func TestVerifyInitDataWrongSecret(t *testing.T) {
	fields := map[string]string{"user": `{"id":7}`, "auth_date": "1700000000"}
	raw := encodeInitData(fields, signInitData(fields, "s3cret"))

	assert.False(t, VerifyInitData(raw, "other"))
}

func TestVerifyInitDataEmptySecretFailsClosed(t *testing.T) {
	fields := map[string]string{"user": `{"id":7}`, "auth_date": "1700000000"}
	raw := encodeInitData(fields, signInitData(fields, "s3cret"))

	assert.False(t, VerifyInitData(raw, ""))
}

func TestVerifyInitDataMalformed(t *testing.T) {
	assert.False(t, VerifyInitData("", "s3cret"))
	assert.False(t, VerifyInitData("%zz=bad", "s3cret"))
	assert.False(t, VerifyInitData("auth_date=1700000000", "s3cret")) // no hash field
}

func TestVerifyInitDataFieldOrderIrrelevant(t *testing.T) {
	fields := map[string]string{
		"user":      `{"id":42}`,
		"auth_date": "1700000000",
		"query_id":  "AA11",
	}
	hash := signInitData(fields, "s3cret")

	// hand-build the query with fields in a different order than signing used
	raw := "query_id=AA11&auth_date=1700000000&user=" + url.QueryEscape(fields["user"]) + "&hash=" + hash
	assert.True(t, VerifyInitData(raw, "s3cret"))
}

func TestParseInitDataUser(t *testing.T) {
	fields := map[string]string{"user": `{"id":42,"username":"ann"}`, "auth_date": "1700000000"}
	raw := encodeInitData(fields, "deadbeef")

	u, err := ParseInitDataUser(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(42), u.ID)
	assert.Equal(t, "ann", u.Username)
}

func TestParseInitDataUserErrors(t *testing.T) {
	_, err := ParseInitDataUser("%zz=bad")
	assert.ErrorIs(t, err, ErrInitDataMalformed)

	_, err = ParseInitDataUser("auth_date=1700000000")
	assert.ErrorIs(t, err, ErrInitDataNoUser)

	_, err = ParseInitDataUser("user=notjson")
	assert.ErrorIs(t, err, ErrInitDataBadUser)

	_, err = ParseInitDataUser("user=" + "%7B%22username%22%3A%22ann%22%7D") // no id
	assert.ErrorIs(t, err, ErrInitDataBadUser)
}
