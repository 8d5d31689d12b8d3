// Package notification delivers reviewer emails over SMTP.
package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// sendMailFunc matches smtp.SendMail, swapped out in tests
type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier emails reviewers when their hidden review is removed by
// the retention sweep.
type SMTPNotifier struct {
	cfg         config.MailConfig
	userRepo    identity.UserRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
	sendMail    sendMailFunc
}

// NewSMTPNotifier creates a notifier from mail configuration
func NewSMTPNotifier(
	cfg config.MailConfig,
	userRepo identity.UserRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *SMTPNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTPNotifier{
		cfg:         cfg,
		userRepo:    userRepo,
		productRepo: productRepo,
		logger:      logger,
		sendMail:    smtp.SendMail,
	}
}

// NotifyReviewRemoved emails the review's author that their unapproved
// review was removed. The product title is included when it still
// exists; a deleted product falls back to a generic subject.
func (n *SMTPNotifier) NotifyReviewRemoved(ctx context.Context, userID, productID uuid.UUID) error {
	user, err := n.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to resolve reviewer: %w", err)
	}

	productTitle := "a product"
	if product, err := n.productRepo.FindByID(ctx, productID); err == nil {
		productTitle = product.Title
	}

	subject := "Your review was not approved"
	body := fmt.Sprintf(
		"Hello %s,\r\n\r\n"+
			"Your review of %s was not approved by our moderators and has been removed.\r\n"+
			"You are welcome to submit a new review at any time.\r\n",
		user.Username, productTitle,
	)

	msg := buildMessage(n.cfg.From, user.Email, subject, body)

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
	if err := n.sendMail(addr, auth, n.cfg.From, []string{user.Email}, msg); err != nil {
		return fmt.Errorf("failed to send review removal mail: %w", err)
	}

	n.logger.Debug("review removal mail sent",
		zap.String("user_id", userID.String()),
		zap.String("product_id", productID.String()),
	)
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

// NopNotifier discards notifications. Used when mail is disabled.
type NopNotifier struct{}

// NotifyReviewRemoved does nothing
func (NopNotifier) NotifyReviewRemoved(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}
