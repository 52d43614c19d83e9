package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// トークンの種類。accessとrefreshとパスワード再設定を同じ署名鍵で区別する。
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
	TokenKindReset   TokenKind = "reset"
)

var ErrInvalidToken = errors.New("invalid token")

// JWTを発行・検証する約束
type TokenIssuer interface {
	Issue(userID string, isAdmin bool, kind TokenKind, now time.Time) (token string, expiresAt time.Time, err error)
	Parse(token string, kind TokenKind) (userID string, isAdmin bool, err error)
}

// HS256のJWT発行・検証
type JWTIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	resetTTL   time.Duration
}

func NewJWTIssuer(secret string, accessTTL, refreshTTL, resetTTL time.Duration) *JWTIssuer {
	return &JWTIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		resetTTL:   resetTTL,
	}
}

func (i *JWTIssuer) Issue(userID string, isAdmin bool, kind TokenKind, now time.Time) (string, time.Time, error) {
	ttl := i.accessTTL
	switch kind {
	case TokenKindRefresh:
		ttl = i.refreshTTL
	case TokenKindReset:
		ttl = i.resetTTL
	}

	expiresAt := now.Add(ttl)

	claims := jwt.MapClaims{
		"sub":   userID,
		"admin": isAdmin,
		"kind":  string(kind),
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// Parse は署名と有効期限とkindを検証してsubを返す
func (i *JWTIssuer) Parse(rawToken string, kind TokenKind) (string, bool, error) {
	token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})
	if err != nil || token == nil || !token.Valid {
		return "", false, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false, ErrInvalidToken
	}

	if k, _ := claims["kind"].(string); k != string(kind) {
		return "", false, ErrInvalidToken
	}

	userID, _ := claims["sub"].(string)
	if userID == "" {
		return "", false, ErrInvalidToken
	}

	isAdmin, _ := claims["admin"].(bool)
	return userID, isAdmin, nil
}
