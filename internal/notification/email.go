package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"
)

// メール送信の約束。コア処理の後に呼ばれ、失敗してもコア処理は巻き戻さない。
type Sender interface {
	SendAccountConfirmation(ctx context.Context, email string, token string) error
	SendPasswordReset(ctx context.Context, email string, token string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender はgo-mailでのSMTP送信
type SMTPSender struct {
	client *mail.Client
	from   string
}

func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &SMTPSender{client: client, from: cfg.From}, nil
}

func (s *SMTPSender) SendAccountConfirmation(ctx context.Context, email string, token string) error {
	body := fmt.Sprintf(
		"<html><body><strong>Hello!</strong><p>Use this token: <strong>%s</strong> to confirm your account.</p></body></html>",
		token,
	)
	return s.send(ctx, email, "Confirm your account", body)
}

func (s *SMTPSender) SendPasswordReset(ctx context.Context, email string, token string) error {
	body := fmt.Sprintf(
		"<html><body><strong>Hello!</strong><p>Use this token: <strong>%s</strong> to recover your password.</p></body></html>",
		token,
	)
	return s.send(ctx, email, "Reset your Password", body)
}

func (s *SMTPSender) send(ctx context.Context, to string, subject string, htmlBody string) error {
	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return err
	}
	if err := m.To(to); err != nil {
		return err
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextHTML, htmlBody)

	return s.client.DialAndSendWithContext(ctx, m)
}

// SMTP未設定の環境用。送った体でログだけ残す。
type LogSender struct {
	log *slog.Logger
}

func NewLogSender(log *slog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendAccountConfirmation(ctx context.Context, email string, token string) error {
	s.log.InfoContext(ctx, "skipped account confirmation email", "to", email)
	return nil
}

func (s *LogSender) SendPasswordReset(ctx context.Context, email string, token string) error {
	s.log.InfoContext(ctx, "skipped password reset email", "to", email)
	return nil
}
