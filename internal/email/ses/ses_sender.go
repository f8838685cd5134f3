package ses

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"invokit/internal/domain"
	"invokit/internal/port"
)

type sesDispatcher struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESDispatcher creates an SES-backed NotificationDispatcher. When access
// and secret keys are empty the default AWS credential chain is used.
func NewSESDispatcher(region, accessKey, secretKey, fromAddress, fromName string) (port.NotificationDispatcher, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesDispatcher{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesDispatcher) SendQuoteNotification(ctx context.Context, client *domain.Client, quote *domain.Quote) error {
	subject := fmt.Sprintf("Your quote from %s", s.fromName)
	htmlBody := buildQuoteHTML(client, quote)

	var lines []string
	for _, it := range quote.Items {
		lines = append(lines, fmt.Sprintf("- %s x%d @ %s", it.Name, it.Quantity, it.Price.StringFixed(2)))
	}
	textBody := fmt.Sprintf("Hi %s,\n\nHere is your quote:\n%s\n\nSubtotal: %s\nTax: %s\nTotal: %s\n\n%s",
		client.ClientName, strings.Join(lines, "\n"),
		quote.Subtotal.StringFixed(2), quote.Tax.StringFixed(2), quote.Total.StringFixed(2), s.fromName)

	return s.send(ctx, client.Email, subject, htmlBody, textBody)
}

func (s *sesDispatcher) SendInvoiceNotification(ctx context.Context, inv *domain.Invoice) error {
	subject := fmt.Sprintf("Invoice %s from %s", inv.InvoiceNumber, s.fromName)
	htmlBody := buildInvoiceHTML(inv)
	textBody := fmt.Sprintf("Hi %s,\n\nInvoice %s for %s is due on %s.\nTotal amount: %s\n\n%s",
		inv.ClientName, inv.InvoiceNumber, inv.CompanyName,
		inv.DueDate.Format("2006-01-02"), inv.Total.StringFixed(2), s.fromName)

	return s.send(ctx, inv.Email, subject, htmlBody, textBody)
}

func (s *sesDispatcher) send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildQuoteHTML(client *domain.Client, quote *domain.Quote) string {
	var rows strings.Builder
	for _, it := range quote.Items {
		rows.WriteString(fmt.Sprintf(
			`<tr><td style="padding: 6px 12px;">%s</td><td style="padding: 6px 12px; text-align: right;">%d</td><td style="padding: 6px 12px; text-align: right;">%s</td></tr>`,
			it.Name, it.Quantity, it.Price.StringFixed(2)))
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Your quote is ready</h2>
  <p>Hi %s,</p>
  <p>Please review the quote we prepared for %s:</p>
  <table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
    <tr style="background: #f5f5f5;"><th style="padding: 6px 12px; text-align: left;">Item</th><th style="padding: 6px 12px; text-align: right;">Qty</th><th style="padding: 6px 12px; text-align: right;">Price</th></tr>
    %s
  </table>
  <p>Subtotal: %s<br>Tax: %s<br><strong>Total: %s</strong></p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Reply to this email to approve or reject the quote.</p>
</body>
</html>`, client.ClientName, client.CompanyName, rows.String(),
		quote.Subtotal.StringFixed(2), quote.Tax.StringFixed(2), quote.Total.StringFixed(2))
}

func buildInvoiceHTML(inv *domain.Invoice) string {
	var rows strings.Builder
	for _, it := range inv.Items {
		rows.WriteString(fmt.Sprintf(
			`<tr><td style="padding: 6px 12px;">%s</td><td style="padding: 6px 12px; text-align: right;">%d</td><td style="padding: 6px 12px; text-align: right;">%s</td></tr>`,
			it.Description, it.Quantity, it.Price.StringFixed(2)))
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Invoice %s</h2>
  <p>Hi %s,</p>
  <p>Your invoice for %s is due on <strong>%s</strong>.</p>
  <table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
    <tr style="background: #f5f5f5;"><th style="padding: 6px 12px; text-align: left;">Description</th><th style="padding: 6px 12px; text-align: right;">Qty</th><th style="padding: 6px 12px; text-align: right;">Price</th></tr>
    %s
  </table>
  <p>Subtotal: %s<br>Tax: %s<br><strong>Total due: %s</strong></p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Please reference %s with your payment.</p>
</body>
</html>`, inv.InvoiceNumber, inv.ClientName, inv.CompanyName, inv.DueDate.Format("2006-01-02"),
		rows.String(), inv.Subtotal.StringFixed(2), inv.Tax.StringFixed(2), inv.Total.StringFixed(2),
		inv.InvoiceNumber)
}
