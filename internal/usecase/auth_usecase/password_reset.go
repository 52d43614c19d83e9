package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"app/internal/notification"
	"app/internal/repository"
	"app/internal/validator"
)

// パスワード再設定。メールで再設定トークンを送り、
// そのトークンで新しいパスワードを受け付ける。
type PasswordResetUsecase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	issuer   TokenIssuer
	sender   notification.Sender
	clock    Clock
	log      *slog.Logger
}

func NewPasswordResetUsecase(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	issuer TokenIssuer,
	sender notification.Sender,
	clock Clock,
	log *slog.Logger,
) *PasswordResetUsecase {
	return &PasswordResetUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
		sender:   sender,
		clock:    clock,
		log:      log,
	}
}

// Forgot は再設定メールを送る。
// ユーザーの有無は外から区別できないよう、見つからなくても成功扱い。
func (u *PasswordResetUsecase) Forgot(ctx context.Context, username string) error {
	username = strings.ToLower(strings.TrimSpace(username))

	user, err := u.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}
		return err
	}

	token, _, err := u.issuer.Issue(user.ID, user.IsAdmin, TokenKindReset, u.clock.Now())
	if err != nil {
		return err
	}

	//メール失敗でリクエスト自体は失敗させない
	if err := u.sender.SendPasswordReset(ctx, user.Email, token); err != nil {
		u.log.WarnContext(ctx, "password reset email failed", "error", err)
	}
	return nil
}

// Change は再設定トークンを検証して新しいパスワードを保存する
func (u *PasswordResetUsecase) Change(ctx context.Context, token string, newPassword string) error {
	userID, _, err := u.issuer.Parse(token, TokenKindReset)
	if err != nil {
		return ErrInvalidToken
	}

	if err := validator.ValidatePassword(newPassword); err != nil {
		return ErrWeakPassword
	}

	hash, err := u.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	if err := u.userRepo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	return nil
}
