package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/url"
	"sort"
	"strings"
)

// Errors for malformed launch payloads. Distinct so callers can tell a broken
// query string from a broken user field, but all of them fail closed.
var (
	ErrInitDataMalformed = errors.New("init data is not a valid query string")
	ErrInitDataNoUser    = errors.New("init data has no user field")
	ErrInitDataBadUser   = errors.New("init data user field is not valid JSON")
)

// initDataLabel is the fixed label the web-app secret key is derived from.
const initDataLabel = "WebAppData"

// InitDataUser is the subset of the nested user JSON this application reads.
type InitDataUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// VerifyInitData checks that a web-app launch payload was signed by the bot.
// The data-check-string is every field except hash, key-sorted and joined as
// key=value lines; the signing key is HMAC-SHA256 of the WebAppData label under
// the bot token. An empty token or unparseable payload fails closed.
func VerifyInitData(raw, botToken string) bool {
	if botToken == "" || raw == "" {
		return false
	}

	values, err := url.ParseQuery(raw)
	if err != nil {
		return false
	}
	gotHash := values.Get("hash")
	if gotHash == "" {
		return false
	}
	values.Del("hash")

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+values.Get(k))
	}
	checkString := strings.Join(pairs, "\n")

	keyMAC := hmac.New(sha256.New, []byte(botToken))
	keyMAC.Write([]byte(initDataLabel))
	secret := keyMAC.Sum(nil)

	sigMAC := hmac.New(sha256.New, secret)
	sigMAC.Write([]byte(checkString))
	want := hex.EncodeToString(sigMAC.Sum(nil))

	return hmac.Equal([]byte(want), []byte(gotHash))
}

// ParseInitDataUser extracts the nested user object from a launch payload.
// Call only after VerifyInitData succeeded; the payload is untrusted until then.
func ParseInitDataUser(raw string) (*InitDataUser, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, ErrInitDataMalformed
	}

	userJSON := values.Get("user")
	if userJSON == "" {
		return nil, ErrInitDataNoUser
	}

	var u InitDataUser
	if err := json.Unmarshal([]byte(userJSON), &u); err != nil {
		return nil, ErrInitDataBadUser
	}
	if u.ID == 0 {
		return nil, ErrInitDataBadUser
	}
	return &u, nil
}
