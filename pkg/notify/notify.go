package notify

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"paramount-autos/pkg/utils"

	"go.uber.org/zap"
)

// BookingNotice is the summary sent to the back office for a new booking.
type BookingNotice struct {
	RefNumber     string
	CustomerName  string
	Phone         string
	Email         string
	Pickup        string
	Dropoff       string
	StartDate     time.Time
	EndDate       time.Time
	Days          int
	Vehicles      []string
	SecurityCount int
	TotalAmount   int64
}

// Notifier delivers back-office notifications.
type Notifier interface {
	BookingCreated(ctx context.Context, notice BookingNotice) error
}

// New returns a SendGrid notifier when an API key and recipient are set,
// and a log-only notifier otherwise.
func New(cfg utils.EmailConfig, log *zap.Logger) Notifier {
	if cfg.SendGridAPIKey == "" || cfg.NotifyTo == "" || cfg.From == "" {
		log.Info("SendGrid not configured, booking notifications are logged only")
		return NewLogNotifier(log)
	}
	return NewSendGridNotifier(cfg, log)
}

type logNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) Notifier {
	return &logNotifier{log: log.With(zap.String("notifier", "log"))}
}

func (n *logNotifier) BookingCreated(_ context.Context, notice BookingNotice) error {
	n.log.Info("New booking",
		zap.String("ref_number", notice.RefNumber),
		zap.String("customer", notice.CustomerName),
		zap.String("phone", notice.Phone),
		zap.Int64("total_amount", notice.TotalAmount),
	)
	return nil
}

// Subject renders the notification subject line.
func (n BookingNotice) Subject() string {
	return fmt.Sprintf("New booking %s from %s", n.RefNumber, n.CustomerName)
}

// PlainText renders the notification body.
func (n BookingNotice) PlainText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Reference: %s\n", n.RefNumber)
	fmt.Fprintf(&b, "Customer: %s\n", n.CustomerName)
	fmt.Fprintf(&b, "Phone: %s\n", n.Phone)
	if n.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", n.Email)
	}
	fmt.Fprintf(&b, "Pickup: %s\n", n.Pickup)
	fmt.Fprintf(&b, "Dropoff: %s\n", n.Dropoff)
	fmt.Fprintf(&b, "Dates: %s to %s (%d days)\n",
		n.StartDate.Format("2006-01-02"), n.EndDate.Format("2006-01-02"), n.Days)
	b.WriteString("Vehicles:\n")
	for _, v := range n.Vehicles {
		fmt.Fprintf(&b, "  - %s\n", v)
	}
	if n.SecurityCount > 0 {
		fmt.Fprintf(&b, "Security personnel: %d\n", n.SecurityCount)
	}
	fmt.Fprintf(&b, "Total: %s\n", FormatNaira(n.TotalAmount))
	return b.String()
}

// FormatNaira renders whole Naira with thousands separators, e.g. ₦650,000.
func FormatNaira(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)

	var b strings.Builder
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return sign + "₦" + b.String()
}
