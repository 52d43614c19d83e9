package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"app/internal/domain/model"
	"app/internal/notification"
	"app/internal/repository"
	"app/internal/validator"
)

// 会員登録の入力
type RegisterUserInput struct {
	Email    string
	Username string
	Password string
}

// 会員登録の出力
type RegisterUserOutput struct {
	User model.User
}

var (
	// 入力が不正
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrInvalidUsername    = errors.New("invalid username")
	ErrWeakPassword       = errors.New("password too short")

	// 競合
	ErrAlreadyExists = errors.New("email or username already exists")
)

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// RegisterUserUsecaseは会員登録の処理。
type RegisterUserUsecase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	issuer   TokenIssuer
	sender   notification.Sender
	idGen    IDGenerator
	clock    Clock
	log      *slog.Logger
}

// DI
func NewRegisterUserUsecase(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	issuer TokenIssuer,
	sender notification.Sender,
	idGen IDGenerator,
	clock Clock,
	log *slog.Logger,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
		sender:   sender,
		idGen:    idGen,
		clock:    clock,
		log:      log,
	}
}

// 会員登録実行
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (RegisterUserOutput, error) {
	email, err := validator.NormalizeEmail(in.Email)
	if err != nil {
		return RegisterUserOutput{}, ErrInvalidEmailFormat
	}

	username, err := validator.NormalizeUsername(in.Username)
	if err != nil {
		return RegisterUserOutput{}, ErrInvalidUsername
	}

	if err := validator.ValidatePassword(in.Password); err != nil {
		return RegisterUserOutput{}, ErrWeakPassword
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return RegisterUserOutput{}, err
	}

	now := u.clock.Now()
	user := &model.User{
		ID:           u.idGen.NewID(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	//重複はDBの一意制約で弾く（同時登録でも安全）
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return RegisterUserOutput{}, ErrAlreadyExists
		}
		return RegisterUserOutput{}, err
	}

	//確認メールは投げっぱなし。失敗しても登録は成立する。
	token, _, err := u.issuer.Issue(user.ID, false, TokenKindReset, now)
	if err == nil {
		if err := u.sender.SendAccountConfirmation(ctx, user.Email, token); err != nil {
			u.log.WarnContext(ctx, "account confirmation email failed", "error", err)
		}
	}

	safe := *user
	safe.PasswordHash = ""
	return RegisterUserOutput{User: safe}, nil
}
