// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package mailer dispatches outbound notification email. Delivery is
// load-bearing for account activation, so Send never fails silently:
// any transport error propagates to the caller.
package mailer

import (
	"context"
	"fmt"
	"strconv"

	gomail "github.com/wneessen/go-mail"
)

// Sender delivers a plain-text message to a single recipient.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTP is the production Sender backed by an SMTP relay.
type SMTP struct {
	host string
	port int
	user string
	pass string
	from string
}

// NewSMTP creates an SMTP sender. port is the string form from config.
func NewSMTP(host, port, user, pass, from string) (*SMTP, error) {
	p, err := strconv.Atoi(port)
	if err != nil {
		return nil, fmt.Errorf("smtp port: %w", err)
	}
	return &SMTP{host: host, port: p, user: user, pass: pass, from: from}, nil
}

// Send delivers the message, dialing a fresh connection per call. The
// signup volume does not justify connection pooling.
func (s *SMTP) Send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	opts := []gomail.Option{
		gomail.WithPort(s.port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if s.user != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.user),
			gomail.WithPassword(s.pass),
		)
	}

	client, err := gomail.NewClient(s.host, opts...)
	if err != nil {
		return fmt.Errorf("mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("mail send: %w", err)
	}
	return nil
}
