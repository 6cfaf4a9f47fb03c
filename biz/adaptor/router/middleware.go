package router

import (
	"context"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	hertz "github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/golang-jwt/jwt/v4"
	"github.com/xh-polaris/psych-crisis/biz/infrastructure/config"
)

func _rootMw() []app.HandlerFunc {
	return nil
}

func _sessionWsMw() []app.HandlerFunc {
	return nil
}

// _historyMw 督导端接口的jwt鉴权
func _historyMw() []app.HandlerFunc {
	return []app.HandlerFunc{Auth()}
}

// Auth 校验Authorization头中的Bearer token
func Auth() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		auth := string(c.GetHeader("Authorization"))
		tokenStr, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || tokenStr == "" {
			c.AbortWithStatus(hertz.StatusUnauthorized)
			return
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(config.GetConfig().Auth.SecretKey), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatus(hertz.StatusUnauthorized)
			return
		}
		c.Next(ctx)
	}
}
