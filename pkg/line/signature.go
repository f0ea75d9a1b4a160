package line

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// VerifySignature checks an X-Line-Signature header value against the raw
// request body: base64(HMAC-SHA256(channelSecret, body)). Comparison is
// constant-time.
func VerifySignature(channelSecret string, body []byte, signature string) bool {
	if signature == "" || channelSecret == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(channelSecret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
