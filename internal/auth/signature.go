package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignUserID 计算 X-User-Signature：hex(HMAC-SHA256(secret, userID))
func SignUserID(secret []byte, userID string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(userID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyUserIDSignature 常量时间比较签名
func VerifyUserIDSignature(secret []byte, userID, signature string) bool {
	if len(secret) == 0 || signature == "" {
		return false
	}
	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	want, _ := hex.DecodeString(SignUserID(secret, userID))
	return hmac.Equal(got, want)
}
