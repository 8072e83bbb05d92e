package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpired 只读解析后端签发的 JWT，取 exp 判断是否已过期。
// 令牌不是 JWT 或没有 exp 时按未过期处理，由后端最终裁决。
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Before(now)
}
