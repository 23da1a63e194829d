package utils

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/smtp"
	"sync"

	"go.uber.org/zap"

	"github.com/sareecustoms/storefront-api/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type SMTPSettings struct {
	From     string
	Password string
	Host     string
	Address  string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Mailer struct {
	settings SMTPSettings
	send     sendFunc
}

func NewMailer(settings SMTPSettings) *Mailer {
	return &Mailer{settings: settings, send: smtp.SendMail}
}

// SendEmail renders the named embedded template with data and sends it as
// an HTML message.
func (m *Mailer) SendEmail(emailTo, emailSubject, templateName string, data any) error {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		m.settings.From,
		emailTo,
		emailSubject,
		body.String(),
	)

	auth := smtp.PlainAuth("", m.settings.From, m.settings.Password, m.settings.Host)
	if err := m.send(m.settings.Address, auth, m.settings.From, []string{emailTo}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// OrderNotifier is told about every order the API accepts.
type OrderNotifier interface {
	OrderPlaced(order models.Order)
}

type NopNotifier struct{}

func (NopNotifier) OrderPlaced(models.Order) {}

// MailNotifier emails the shop about new orders in the background. Failures
// are logged and never reach the customer.
type MailNotifier struct {
	mailer *Mailer
	to     string
	log    *zap.Logger
	wg     sync.WaitGroup
}

func NewMailNotifier(mailer *Mailer, to string, log *zap.Logger) *MailNotifier {
	return &MailNotifier{mailer: mailer, to: to, log: log}
}

func (n *MailNotifier) OrderPlaced(order models.Order) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		subject := fmt.Sprintf("New order from %s", order.CustomerName)
		data := struct{ Order models.Order }{order}
		if err := n.mailer.SendEmail(n.to, subject, "new_order.html", data); err != nil {
			n.log.Warn("Error sending order notification", zap.String("order_id", order.ID), zap.Error(err))
			return
		}
		n.log.Info("Order notification sent", zap.String("order_id", order.ID))
	}()
}

// Wait blocks until every pending notification has been attempted.
func (n *MailNotifier) Wait() {
	n.wg.Wait()
}
