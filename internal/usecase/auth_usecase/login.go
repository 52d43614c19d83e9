package auth

import (
	"context"
	"errors"
	"strings"

	"app/internal/repository"
)

// handlerからusecaseに渡す入力
type LoginInput struct {
	Username string
	Password string
}

// handlerがJSONにして返す
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// ユーザー名またはパスワードが違う
var ErrInvalidCredentials = errors.New("invalid credentials")

type LoginUsecase struct {
	userRepo repository.UserRepository
	verifier PasswordVerifier
	issuer   TokenIssuer
	clock    Clock
}

func NewLoginUsecase(
	userRepo repository.UserRepository,
	verifier PasswordVerifier,
	issuer TokenIssuer,
	clock Clock,
) *LoginUsecase {
	return &LoginUsecase{
		userRepo: userRepo,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
	}
}

// ログイン処理を実行する
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (TokenPair, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))

	user, err := u.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return TokenPair{}, ErrInvalidCredentials
		}
		return TokenPair{}, err
	}

	//パスワード照合
	if ok := u.verifier.Verify(in.Password, user.PasswordHash); !ok {
		return TokenPair{}, ErrInvalidCredentials
	}

	return u.issuePair(user.ID, user.IsAdmin)
}

// Refresh はリフレッシュトークンから新しいトークンペアを発行する
func (u *LoginUsecase) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	userID, _, err := u.issuer.Parse(refreshToken, TokenKindRefresh)
	if err != nil {
		return TokenPair{}, ErrInvalidToken
	}

	//ユーザーが消えていないか確認する
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return TokenPair{}, ErrInvalidToken
		}
		return TokenPair{}, err
	}

	return u.issuePair(user.ID, user.IsAdmin)
}

func (u *LoginUsecase) issuePair(userID string, isAdmin bool) (TokenPair, error) {
	now := u.clock.Now()

	access, _, err := u.issuer.Issue(userID, isAdmin, TokenKindAccess, now)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, _, err := u.issuer.Issue(userID, isAdmin, TokenKindRefresh, now)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}
