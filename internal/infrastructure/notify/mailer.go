package notify

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"stepsign/internal/domain/claim"
	"stepsign/internal/shared/config"
	"stepsign/internal/shared/logger"
)

// Mailer emails the operator when an automatic mint fails and a claim is
// left waiting for manual approval.
type Mailer struct {
	cfg    config.AlertsConfig
	dialer *gomail.Dialer
	logger logger.Interface
}

func NewMailer(cfg config.AlertsConfig, log logger.Interface) *Mailer {
	return &Mailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		logger: log,
	}
}

func (m *Mailer) MintFailed(ctx context.Context, c *claim.Claim, reason string) error {
	if !m.cfg.Enabled {
		return nil
	}

	subject := fmt.Sprintf("Mint failed for claim #%d", c.ID())
	body := fmt.Sprintf(`A token mint failed and the claim is waiting for manual approval.

Claim ID:  %d
Wallet:    %s
Steps:     %d
Reward:    %g STEP
Reason:    %s

Approve or reject the claim from the admin endpoint.
`, c.ID(), c.UserWallet(), c.Steps(), c.Reward().Display(), reason)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.FromAddress)
	msg.SetHeader("To", m.cfg.AdminAddress)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Errorw("failed to send mint failure alert",
			"error", err, "claim_id", c.ID())
		return fmt.Errorf("failed to send alert: %w", err)
	}

	m.logger.Infow("mint failure alert sent", "claim_id", c.ID(), "to", m.cfg.AdminAddress)
	return nil
}

// NopNotifier drops alerts. Used when alerting is not configured.
type NopNotifier struct{}

func (NopNotifier) MintFailed(context.Context, *claim.Claim, string) error {
	return nil
}
