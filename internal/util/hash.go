package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPassword 计算口令的 sha256 十六进制摘要。
// 登录按 (email, digest) 直接查库，因此摘要必须是确定性的。
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
