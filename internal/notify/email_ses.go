package notify

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/wolfman30/appointment-assistant/pkg/logging"
)

// SES tag values allow only ASCII letters, digits, underscore and dash.
var sesTagUnsafe = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// SESSender delivers through Amazon SES v2.
type SESSender struct {
	client *sesv2.Client
	from   fromAddress
	logger *logging.Logger
}

// SESConfig holds the region and sender identity.
type SESConfig struct {
	Region    string
	FromEmail string
	FromName  string
}

// NewSESSender wraps an existing client; nil client yields nil.
func NewSESSender(client *sesv2.Client, cfg SESConfig, logger *logging.Logger) *SESSender {
	if client == nil {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &SESSender{
		client: client,
		from:   newFromAddress(cfg.FromName, cfg.FromEmail),
		logger: logger,
	}
}

// NewSESSenderFromEnv builds an SES client from the default AWS credential chain.
func NewSESSenderFromEnv(ctx context.Context, cfg SESConfig, logger *logging.Logger) (*SESSender, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("notify: load aws config: %w", err)
	}
	return NewSESSender(sesv2.NewFromConfig(awsCfg), cfg, logger), nil
}

// Send implements EmailSender.
func (s *SESSender) Send(ctx context.Context, msg EmailMessage) error {
	if s.client == nil {
		return ErrEmailNotConfigured
	}

	output, err := s.client.SendEmail(ctx, sesInput(s.from, msg))
	if err != nil {
		return fmt.Errorf("notify: ses send: %w", err)
	}

	s.logger.Info("appointment email sent",
		"provider", "ses",
		"appointment_id", msg.AppointmentID,
		"category", msg.Category,
		"message_id", aws.ToString(output.MessageId),
	)
	return nil
}

func sesInput(from fromAddress, msg EmailMessage) *sesv2.SendEmailInput {
	utf8 := func(v string) *types.Content {
		return &types.Content{Data: aws.String(v), Charset: aws.String("UTF-8")}
	}
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from.String()),
		Destination:      &types.Destination{ToAddresses: []string{msg.To}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: utf8(msg.Subject),
				Body: &types.Body{
					Text: utf8(msg.Body),
					Html: utf8(msg.HTML()),
				},
			},
		},
	}
	tags := [][2]string{{"category", msg.Category}, {"appointment_id", msg.AppointmentID}}
	for _, tag := range tags {
		if tag[1] == "" {
			continue
		}
		input.EmailTags = append(input.EmailTags, types.MessageTag{
			Name:  aws.String(tag[0]),
			Value: aws.String(sesTagUnsafe.ReplaceAllString(tag[1], "_")),
		})
	}
	return input
}

var _ EmailSender = (*SESSender)(nil)
