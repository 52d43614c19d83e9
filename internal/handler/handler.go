package handler

import (
	"net/http"

	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// レスポンスの外枠。リソースはdataに包んで返す。
type DataResponse struct {
	Data interface{} `json:"data"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// 認証済みならユーザーIDを返す
func getUserIDFromContext(c echo.Context) (string, bool) {
	userID, ok := c.Get(middleware.CtxUserIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// OptionalAuthJWT配下用。匿名ならnil。
func optionalUserID(c echo.Context) *string {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return nil
	}
	return &userID
}
