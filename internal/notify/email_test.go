package notify

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailMessageHTML(t *testing.T) {
	msg := EmailMessage{Body: "Your appointment with Dr. <Chen> is confirmed.\n\nReply STOP & save\nthis note."}
	assert.Equal(t,
		"<p>Your appointment with Dr. &lt;Chen&gt; is confirmed.</p><p>Reply STOP &amp; save<br>this note.</p>",
		msg.HTML(),
	)
	assert.Empty(t, EmailMessage{}.HTML())
}

func TestNewSendGridSender(t *testing.T) {
	assert.Nil(t, NewSendGridSender(SendGridConfig{FromEmail: "front-desk@example.com"}, nil))

	sender := NewSendGridSender(SendGridConfig{APIKey: "test-key", FromEmail: "front-desk@example.com"}, nil)
	require.NotNil(t, sender)
	assert.Equal(t, "Appointment Assistant <front-desk@example.com>", sender.from.String())

	sender = NewSendGridSender(SendGridConfig{APIKey: "test-key", FromEmail: "front-desk@example.com", FromName: "Clinic"}, nil)
	require.NotNil(t, sender)
	assert.Equal(t, "Clinic", sender.from.name)
}

func TestSendersWithoutClient(t *testing.T) {
	msg := EmailMessage{To: "patient@example.com", Subject: "Appointment Confirmed"}
	assert.ErrorIs(t, (&SendGridSender{}).Send(context.Background(), msg), ErrEmailNotConfigured)
	assert.ErrorIs(t, (&SESSender{}).Send(context.Background(), msg), ErrEmailNotConfigured)
}

func TestNewSESSender(t *testing.T) {
	assert.Nil(t, NewSESSender(nil, SESConfig{}, nil))

	client := sesv2.NewFromConfig(aws.Config{Region: "us-east-1"})
	sender := NewSESSender(client, SESConfig{FromEmail: "front-desk@example.com"}, nil)
	require.NotNil(t, sender)
	assert.Equal(t, defaultFromName, sender.from.name)
}

func TestSESInputTagsAndBodies(t *testing.T) {
	input := sesInput(newFromAddress("Clinic", "front-desk@example.com"), EmailMessage{
		To:            "patient@example.com",
		Subject:       "Appointment Confirmed",
		Body:          "See you soon.",
		Category:      string(TypeConfirmation),
		AppointmentID: "appointment-0190a1b2.c3",
	})

	assert.Equal(t, "Clinic <front-desk@example.com>", aws.ToString(input.FromEmailAddress))
	assert.Equal(t, []string{"patient@example.com"}, input.Destination.ToAddresses)
	assert.Equal(t, "See you soon.", aws.ToString(input.Content.Simple.Body.Text.Data))
	assert.Equal(t, "<p>See you soon.</p>", aws.ToString(input.Content.Simple.Body.Html.Data))

	require.Len(t, input.EmailTags, 2)
	assert.Equal(t, "category", aws.ToString(input.EmailTags[0].Name))
	assert.Equal(t, "appointment_confirmation", aws.ToString(input.EmailTags[0].Value))
	assert.Equal(t, "appointment-0190a1b2_c3", aws.ToString(input.EmailTags[1].Value))
}

func TestSESInputSkipsEmptyTags(t *testing.T) {
	input := sesInput(newFromAddress("", "front-desk@example.com"), EmailMessage{To: "patient@example.com"})
	assert.Empty(t, input.EmailTags)
}

func TestStubEmailSender_RecordsMessages(t *testing.T) {
	sender := NewStubEmailSender(nil)

	require.NoError(t, sender.Send(context.Background(), EmailMessage{To: "a@example.com", Subject: "one"}))
	require.NoError(t, sender.Send(context.Background(), EmailMessage{To: "b@example.com", Subject: "two"}))

	sent := sender.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "two", sent[1].Subject)
}
