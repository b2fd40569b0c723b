package bootstrap

import (
	"context"
	"fmt"

	appconfig "github.com/wolfman30/appointment-assistant/internal/config"
	"github.com/wolfman30/appointment-assistant/internal/notify"
	"github.com/wolfman30/appointment-assistant/pkg/logging"
)

// BuildEmailSender wires the confirmation email provider. Providers that
// cannot be configured fall back to the stub sender with a warning.
func BuildEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (notify.EmailSender, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	switch cfg.EmailProvider {
	case "", "stub":
		return notify.NewStubEmailSender(logger), nil
	case "sendgrid":
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.EmailFromAddress,
			FromName:  cfg.EmailFromName,
		}, logger)
		if sender == nil {
			logger.Warn("sendgrid selected but SENDGRID_API_KEY empty; using stub sender")
			return notify.NewStubEmailSender(logger), nil
		}
		logger.Info("email provider enabled", "provider", "sendgrid")
		return sender, nil
	case "ses":
		sender, err := notify.NewSESSenderFromEnv(ctx, notify.SESConfig{
			Region:    cfg.AWSRegion,
			FromEmail: cfg.EmailFromAddress,
			FromName:  cfg.EmailFromName,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: ses sender: %w", err)
		}
		logger.Info("email provider enabled", "provider", "ses", "region", cfg.AWSRegion)
		return sender, nil
	default:
		return nil, fmt.Errorf("bootstrap: unknown EMAIL_PROVIDER %q", cfg.EmailProvider)
	}
}
