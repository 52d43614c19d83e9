package usecase

import (
	"errors"
	"fmt"
	"time"
)

// UsecaseのエラーはHTTPステータスに直結させる（404/409/401/422）。
// どれも呼び出し側が直せるエラーなのでリトライはしない。
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 現在の時間
type Clock interface {
	Now() time.Time
}
