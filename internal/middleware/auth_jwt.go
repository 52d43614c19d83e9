package middleware

import (
	"net/http"
	"strings"

	auth "app/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey  = "user_id"  // string (uuid)
	CtxIsAdminKey = "is_admin" // bool
)

type errorResponse struct {
	Error string `json:"error"`
}

// bearerAuth用のJWT検証ミドルウェア。トークン必須。
func AuthJWT(issuer auth.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, isAdmin, ok := parseBearer(c, issuer)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			}

			c.Set(CtxUserIDKey, userID)
			c.Set(CtxIsAdminKey, isAdmin)
			return next(c)
		}
	}
}

// OptionalAuthJWT はカート系のルート用。
// トークンが無ければ匿名として通し、あれば検証する（壊れたトークンは401）。
func OptionalAuthJWT(issuer auth.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") == "" {
				return next(c)
			}

			userID, isAdmin, ok := parseBearer(c, issuer)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			}

			c.Set(CtxUserIDKey, userID)
			c.Set(CtxIsAdminKey, isAdmin)
			return next(c)
		}
	}
}

// AdminGuard は管理者専用ルート用。AuthJWTの後に置く。
func AdminGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			isAdmin, _ := c.Get(CtxIsAdminKey).(bool)
			if !isAdmin {
				return c.JSON(http.StatusUnauthorized, errorResponse{Error: "permission denied"})
			}
			return next(c)
		}
	}
}

func parseBearer(c echo.Context, issuer auth.TokenIssuer) (string, bool, bool) {
	//Authorizationヘッダを取得
	authz := c.Request().Header.Get("Authorization")
	if authz == "" {
		return "", false, false
	}

	//Bearer形式か確認してtokenを抜く
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false, false
	}
	rawToken := strings.TrimSpace(parts[1])
	if rawToken == "" {
		return "", false, false
	}

	userID, isAdmin, err := issuer.Parse(rawToken, auth.TokenKindAccess)
	if err != nil || userID == "" {
		return "", false, false
	}

	return userID, isAdmin, true
}
