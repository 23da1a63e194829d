package utils

import (
	"errors"
	"net/smtp"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sareecustoms/storefront-api/models"
)

type sentMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func capture(t *testing.T, fail bool) (*Mailer, func() []sentMail) {
	t.Helper()
	var mu sync.Mutex
	var sent []sentMail
	m := NewMailer(SMTPSettings{From: "shop@example.com", Host: "smtp.example.com", Address: "smtp.example.com:587"})
	m.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		if fail {
			return errors.New("connection refused")
		}
		mu.Lock()
		defer mu.Unlock()
		sent = append(sent, sentMail{addr: addr, from: from, to: to, msg: string(msg)})
		return nil
	}
	return m, func() []sentMail {
		mu.Lock()
		defer mu.Unlock()
		return append([]sentMail(nil), sent...)
	}
}

func sampleOrder() models.Order {
	return models.Order{
		ID:              "order-42",
		CustomerName:    "Meera",
		CustomerPhone:   "+91 90000 00000",
		ShippingAddress: "12 Temple Street, Chennai",
		Customization:   "Add fall and pico",
		Items: []models.OrderItem{
			{ProductID: "p1", ProductName: "Premium Kanchipuram Silk", Quantity: 1, Price: decimal.NewFromInt(15000)},
		},
		TotalAmount: decimal.NewFromInt(15000),
		CreatedAt:   time.Date(2026, 5, 2, 10, 30, 0, 0, time.UTC),
	}
}

func TestMailNotifierSendsOrderSummary(t *testing.T) {
	mailer, sent := capture(t, false)
	n := NewMailNotifier(mailer, "owner@example.com", zap.NewNop())

	n.OrderPlaced(sampleOrder())
	n.Wait()

	mails := sent()
	require.Len(t, mails, 1)
	assert.Equal(t, "smtp.example.com:587", mails[0].addr)
	assert.Equal(t, []string{"owner@example.com"}, mails[0].to)
	assert.Contains(t, mails[0].msg, "Subject: New order from Meera")
	assert.Contains(t, mails[0].msg, "Premium Kanchipuram Silk")
	assert.Contains(t, mails[0].msg, "15000.00")
	assert.Contains(t, mails[0].msg, "Add fall and pico")
}

func TestMailNotifierSwallowsFailures(t *testing.T) {
	mailer, sent := capture(t, true)
	n := NewMailNotifier(mailer, "owner@example.com", zap.NewNop())

	n.OrderPlaced(sampleOrder())
	n.Wait()
	assert.Empty(t, sent())
}
