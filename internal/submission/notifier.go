package submission

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"funnelzip-demo/internal/common/aws"
	"funnelzip-demo/internal/common/logger"
	"funnelzip-demo/internal/models"
)

// Message is a rendered reviewer notification.
type Message struct {
	Subject string
	Body    string
}

// Notifier hands a submission to a reviewer. Failures never fail the
// submission.
type Notifier interface {
	Notify(ctx context.Context, rec models.SubmissionRecord, msg Message) error
	Channel() string
}

var inquiryTemplate = template.Must(template.New("inquiry").Option("missingkey=zero").Parse(`NEW {{.Kind}} INQUIRY - FunnelZip

Contact Details:
Name: {{.F.name}}
Email: {{.F.email}}
Company: {{.F.company}}
Website: {{or .F.website "Not provided"}}

Message:
{{.F.message}}

Submitted: {{.Submitted}}
Reference: {{.ID}}`))

var accessTemplate = template.Must(template.New("access").Option("missingkey=zero").Parse(`NEW ACCESS REQUEST - FunnelZip Pitch Deck

Contact Details:
Name: {{.F.name}}
Email: {{.F.email}}
Company: {{.F.company}}
Role/Interest: {{.F.role}}

Message:
{{or .F.message "No additional message provided"}}

Request Details:
Submitted: {{.Submitted}}
Reference: {{.ID}}
Review within 24 hours; access details are shared by the reviewer directly.

---
Reply directly to: {{.F.email}}`))

// Render formats rec as a reviewer email.
func Render(rec models.SubmissionRecord) (Message, error) {
	data := struct {
		Kind      string
		ID        string
		Submitted string
		F         map[string]string
	}{
		Kind:      strings.ToUpper(string(rec.Kind)),
		ID:        rec.ID,
		Submitted: rec.SubmittedAt.UTC().Format("Mon, 02 Jan 2006 15:04:05 MST"),
		F:         rec.Fields,
	}

	tmpl := inquiryTemplate
	subject := fmt.Sprintf("New %s inquiry from %s", rec.Kind, rec.Fields["company"])
	if rec.Kind == models.KindAccessRequest {
		tmpl = accessTemplate
		subject = fmt.Sprintf("Access request from %s (%s)", rec.Fields["name"], rec.Fields["company"])
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return Message{}, fmt.Errorf("render %s notification: %w", rec.Kind, err)
	}
	return Message{Subject: subject, Body: buf.String()}, nil
}

// ConsoleNotifier writes the notification to the log.
type ConsoleNotifier struct {
	logger logger.Logger
	inbox  string
}

func NewConsoleNotifier(log logger.Logger, inbox string) *ConsoleNotifier {
	return &ConsoleNotifier{logger: log, inbox: inbox}
}

func (c *ConsoleNotifier) Notify(_ context.Context, rec models.SubmissionRecord, msg Message) error {
	c.logger.Info("reviewer notification", map[string]interface{}{
		"to":           c.inbox,
		"subject":      msg.Subject,
		"body":         msg.Body,
		"submissionId": rec.ID,
	})
	return nil
}

func (c *ConsoleNotifier) Channel() string { return "console" }

// SESNotifier mails the review inbox through SES.
type SESNotifier struct {
	client *aws.SESClient
	inbox  string
	logger logger.Logger
}

func NewSESNotifier(client *aws.SESClient, inbox string, log logger.Logger) *SESNotifier {
	return &SESNotifier{client: client, inbox: inbox, logger: log}
}

func (s *SESNotifier) Notify(ctx context.Context, rec models.SubmissionRecord, msg Message) error {
	id, err := s.client.SendText(ctx, s.inbox, msg.Subject, msg.Body)
	if err != nil {
		return err
	}
	s.logger.Debug("reviewer email sent", map[string]interface{}{
		"submissionId": rec.ID,
		"messageId":    id,
	})
	return nil
}

func (s *SESNotifier) Channel() string { return "ses" }

// SNSNotifier publishes the notification to a topic.
type SNSNotifier struct {
	client *aws.SNSClient
	logger logger.Logger
}

func NewSNSNotifier(client *aws.SNSClient, log logger.Logger) *SNSNotifier {
	return &SNSNotifier{client: client, logger: log}
}

func (s *SNSNotifier) Notify(ctx context.Context, rec models.SubmissionRecord, msg Message) error {
	id, err := s.client.Publish(ctx, msg.Subject, msg.Body)
	if err != nil {
		return err
	}
	s.logger.Debug("reviewer notification published", map[string]interface{}{
		"submissionId": rec.ID,
		"messageId":    id,
	})
	return nil
}

func (s *SNSNotifier) Channel() string { return "sns" }
