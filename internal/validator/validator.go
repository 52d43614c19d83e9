package validator

import (
	"errors"
	"regexp"
	"strings"
)

// データモデル境界の入力チェック。コアのワークフローではなく
// ここで弾く（エラーは handler 側で422になる）。

var (
	ErrInvalidSKU      = errors.New("invalid sku")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidUsername = errors.New("invalid username")
	ErrWeakPassword    = errors.New("password too short")
)

var (
	skuPattern      = regexp.MustCompile(`^[A-Z0-9]+$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
	usernamePattern = regexp.MustCompile(`^[a-z0-9_.-]+$`)
)

// NormalizeSKU は大文字化してから形式チェックする。
// 大文字英数字のみ、3〜24文字。
func NormalizeSKU(sku string) (string, error) {
	sku = strings.ToUpper(strings.TrimSpace(sku))

	if len(sku) < 3 || len(sku) > 24 || !skuPattern.MatchString(sku) {
		return "", ErrInvalidSKU
	}
	return sku, nil
}

// NormalizeEmail は小文字化・空白除去してから形式チェックする
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.ReplaceAll(email, " ", ""))

	if email == "" || !emailPattern.MatchString(email) {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// NormalizeUsername は小文字化・空白除去してから形式チェックする
func NormalizeUsername(username string) (string, error) {
	username = strings.ToLower(strings.ReplaceAll(username, " ", ""))

	if len(username) < 3 || len(username) > 50 || !usernamePattern.MatchString(username) {
		return "", ErrInvalidUsername
	}
	return username, nil
}

// パスワード最低文字数（MVP: 8）
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}
	return nil
}
