package notification

import (
	"bytes"
	"html/template"
	"time"
)

const layoutHTML = `<!DOCTYPE html>
<html>
<head>
<style>
body { font-family: Arial, sans-serif; background-color: #f4f6f8; margin: 0; padding: 0; }
.container { max-width: 600px; margin: 30px auto; background: #ffffff; border-radius: 12px; border: 1px solid #000000; overflow: hidden; }
.header { background: #2563eb; padding: 20px; text-align: center; color: #fff; font-size: 20px; font-weight: bold; }
.content { padding: 30px; font-size: 16px; line-height: 1.6; color: #333; }
.button { display: inline-block; padding: 14px 28px; margin: 20px 0; background: #2563eb; color: #fff !important; text-decoration: none; border-radius: 8px; font-weight: bold; }
.footer { background: #f4f6f8; padding: 15px; text-align: center; font-size: 12px; color: #888; }
</style>
</head>
<body>
<div class="container">
<div class="header">{{.Subject}}</div>
<div class="content">{{template "body" .}}</div>
<div class="footer"><p>&copy; {{.Year}} FoodNow. All rights reserved.</p></div>
</div>
</body>
</html>`

const (
	passwordResetBody = `{{define "body"}}<p>Dear {{.Name}},</p>
<p>You have requested to reset your password. Please click the button below to reset it:</p>
<p><a class="button" href="{{.Link}}">Reset Password</a></p>
<p>This link will expire in <b>1 hour</b>.</p>
<p>If you did not request this password reset, please ignore this email.</p>
<p>Best regards,<br>The FoodNow Team</p>{{end}}`

	applicationReceivedBody = `{{define "body"}}<p>Dear {{.Name}},</p>
<p>Thank you for your interest in partnering with <b>FoodNow</b>.</p>
<p>We have received your application for <b>{{.Restaurant}}</b>. Our team will review it and get back to you within <b>5 to 7 business days</b>.</p>
<p>Best regards,<br>The FoodNow Team</p>{{end}}`

	applicationApprovedBody = `{{define "body"}}<p>Dear {{.Name}},</p>
<p>Your application for <b>{{.Restaurant}}</b> has been approved. Welcome to FoodNow!</p>
<p>You can now log in to manage your restaurant, add menu items and start accepting orders.</p>
<p>Best regards,<br>The FoodNow Team</p>{{end}}`

	applicationRejectedBody = `{{define "body"}}<p>Dear {{.Name}},</p>
<p>Thank you for submitting your restaurant application for <b>{{.Restaurant}}</b>.</p>
<p>After careful review, we are unable to proceed with your application at this time.</p>
<p><b>Reason for rejection:</b> {{.Reason}}</p>
<p>We encourage you to address the feedback and reapply in the future.</p>
<p>Best regards,<br>The FoodNow Team</p>{{end}}`
)

type templateData struct {
	Subject    string
	Year       int
	Name       string
	Link       string
	Restaurant string
	Reason     string
}

var (
	passwordResetTmpl       = mustParse(passwordResetBody)
	applicationReceivedTmpl = mustParse(applicationReceivedBody)
	applicationApprovedTmpl = mustParse(applicationApprovedBody)
	applicationRejectedTmpl = mustParse(applicationRejectedBody)
)

func mustParse(body string) *template.Template {
	return template.Must(template.Must(template.New("layout").Parse(layoutHTML)).Parse(body))
}

// render executes a message template; user supplied values are HTML escaped
func render(tmpl *template.Template, data templateData) (string, error) {
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}
	if data.Name == "" {
		data.Name = "User"
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
