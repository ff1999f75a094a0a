package notification

import (
	"context"
	"html/template"
	"sync"
	"time"

	"foodnow-api/metrics"

	"github.com/sirupsen/logrus"
)

const sendTimeout = 30 * time.Second

// Notifier renders the transactional emails and hands them to a Mailer on a
// background goroutine. Failures are logged and counted, never returned.
type Notifier struct {
	mailer Mailer
	from   string
	log    logrus.FieldLogger
	wg     sync.WaitGroup
}

func NewNotifier(mailer Mailer, from string, log logrus.FieldLogger) *Notifier {
	return &Notifier{mailer: mailer, from: from, log: log}
}

func (n *Notifier) PasswordReset(to, name, link string) {
	n.dispatch(to, "Password Reset Request - FoodNow", passwordResetTmpl,
		templateData{Name: name, Link: link})
}

func (n *Notifier) ApplicationReceived(to, name, restaurantName string) {
	n.dispatch(to, "Your FoodNow Restaurant Application has been Received!", applicationReceivedTmpl,
		templateData{Name: name, Restaurant: restaurantName})
}

func (n *Notifier) ApplicationApproved(to, name, restaurantName string) {
	n.dispatch(to, "Congratulations! Your FoodNow Application is Approved!", applicationApprovedTmpl,
		templateData{Name: name, Restaurant: restaurantName})
}

func (n *Notifier) ApplicationRejected(to, name, restaurantName, reason string) {
	n.dispatch(to, "Update on Your FoodNow Application", applicationRejectedTmpl,
		templateData{Name: name, Restaurant: restaurantName, Reason: reason})
}

// Wait blocks until every queued email has been attempted
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) dispatch(to, subject string, tmpl *template.Template, data templateData) {
	entry := n.log.WithFields(logrus.Fields{"to": to, "subject": subject})

	data.Subject = subject
	html, err := render(tmpl, data)
	if err != nil {
		metrics.RecordEmail("failed")
		entry.WithError(err).Error("failed to render email")
		return
	}
	msg := Message{From: n.from, To: to, Subject: subject, HTML: html}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		if err := n.mailer.Send(ctx, msg); err != nil {
			metrics.RecordEmail("failed")
			entry.WithError(err).Error("failed to send email")
			return
		}
		metrics.RecordEmail("sent")
		entry.Info("email sent")
	}()
}
