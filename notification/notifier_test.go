package notification

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"sync"
	"testing"

	"foodnow-api/config"
	"foodnow-api/logger"
)

type captureMailer struct {
	mu   sync.Mutex
	msgs []Message
	err  error
}

func (c *captureMailer) Send(_ context.Context, msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, msg)
	return c.err
}

func TestNotifierRendersMessages(t *testing.T) {
	mailer := &captureMailer{}
	n := NewNotifier(mailer, "noreply@foodnow.com", logger.Discard())

	n.PasswordReset("ann@example.com", "Ann", "http://front.test/reset-password?token=abc")
	n.ApplicationReceived("joe@example.com", "Joe", "Joe's Pizza")
	n.ApplicationApproved("joe@example.com", "Joe", "Joe's Pizza")
	n.ApplicationRejected("bob@example.com", "", "Bob's", "<b>no license</b>")
	n.Wait()

	if len(mailer.msgs) != 4 {
		t.Fatalf("sent %d messages, want 4", len(mailer.msgs))
	}
	bySubject := map[string]Message{}
	for _, m := range mailer.msgs {
		if m.From != "noreply@foodnow.com" {
			t.Errorf("from = %q", m.From)
		}
		bySubject[m.Subject] = m
	}

	reset := bySubject["Password Reset Request - FoodNow"]
	if !strings.Contains(reset.HTML, `href="http://front.test/reset-password?token=abc"`) {
		t.Errorf("reset link missing: %s", reset.HTML)
	}

	received := bySubject["Your FoodNow Restaurant Application has been Received!"]
	if !strings.Contains(received.HTML, "Joe&#39;s Pizza") || received.To != "joe@example.com" {
		t.Errorf("received email = %+v", received)
	}

	rejected := bySubject["Update on Your FoodNow Application"]
	if strings.Contains(rejected.HTML, "<b>no license</b>") {
		t.Error("reason must be escaped")
	}
	if !strings.Contains(rejected.HTML, "Dear User") {
		t.Error("empty name should fall back to User")
	}
}

func TestNotifierSwallowsSendErrors(t *testing.T) {
	mailer := &captureMailer{err: errors.New("smtp down")}
	n := NewNotifier(mailer, "noreply@foodnow.com", logger.Discard())

	n.ApplicationApproved("joe@example.com", "Joe", "Joe's Pizza")
	n.Wait()

	if len(mailer.msgs) != 1 {
		t.Fatalf("attempts = %d", len(mailer.msgs))
	}
}

func TestSMTPMailerBuildsMIME(t *testing.T) {
	var gotAddr string
	var gotTo []string
	var gotBody string
	m := &SMTPMailer{
		Addr: "mail.test:25",
		Host: "mail.test",
		send: func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotTo, gotBody = addr, to, string(msg)
			return nil
		},
	}

	err := m.Send(context.Background(), Message{From: "a@x", To: "b@y", Subject: "Hi", HTML: "<p>hello</p>"})
	if err != nil {
		t.Fatal(err)
	}
	if gotAddr != "mail.test:25" || len(gotTo) != 1 || gotTo[0] != "b@y" {
		t.Errorf("addr=%s to=%v", gotAddr, gotTo)
	}
	for _, want := range []string{"Subject: Hi\r\n", "Content-Type: text/html", "\r\n\r\n<p>hello</p>"} {
		if !strings.Contains(gotBody, want) {
			t.Errorf("message missing %q", want)
		}
	}
}

func TestNewMailer(t *testing.T) {
	log := logger.Discard()

	m, err := NewMailer(config.MailConfig{Transport: "log"}, log)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := m.(*LogMailer); !ok {
		t.Errorf("log transport gave %T", m)
	}

	m, err = NewMailer(config.MailConfig{Transport: "SMTP", SMTPHost: "mail.test", SMTPPort: 2525}, log)
	if err != nil {
		t.Fatal(err)
	}
	if s, ok := m.(*SMTPMailer); !ok || s.Addr != "mail.test:2525" {
		t.Errorf("smtp transport gave %#v", m)
	}

	if _, err := NewMailer(config.MailConfig{Transport: "pigeon"}, log); err == nil {
		t.Error("unknown transport should fail")
	}
}
