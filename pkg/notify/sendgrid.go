package notify

import (
	"context"
	"fmt"

	"paramount-autos/pkg/utils"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

type sendGridNotifier struct {
	client   *sendgrid.Client
	from     string
	fromName string
	to       string
	log      *zap.Logger
}

func NewSendGridNotifier(cfg utils.EmailConfig, log *zap.Logger) Notifier {
	return &sendGridNotifier{
		client:   sendgrid.NewSendClient(cfg.SendGridAPIKey),
		from:     cfg.From,
		fromName: cfg.FromName,
		to:       cfg.NotifyTo,
		log:      log.With(zap.String("notifier", "sendgrid")),
	}
}

func (n *sendGridNotifier) BookingCreated(ctx context.Context, notice BookingNotice) error {
	from := mail.NewEmail(n.fromName, n.from)
	to := mail.NewEmail("Bookings", n.to)
	message := mail.NewSingleEmail(from, notice.Subject(), to, notice.PlainText(), "")

	resp, err := n.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("send booking notification: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", resp.StatusCode, resp.Body)
	}

	n.log.Info("Booking notification sent",
		zap.String("ref_number", notice.RefNumber),
		zap.Int("status_code", resp.StatusCode),
	)
	return nil
}
