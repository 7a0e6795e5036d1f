package utils

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// ConfirmationDetails carries the appointment facts included in the
// confirmation email sent when an admin confirms a booking.
type ConfirmationDetails struct {
	PatientName string
	DoctorName  string
	Date        string
	StartTime   string
	EndTime     string
}

// Mailer sends patient notifications. Implementations must be safe for
// concurrent use; the caller treats every send as best-effort.
type Mailer interface {
	SendAppointmentConfirmed(to string, details ConfirmationDetails) error
}

// SMTPMailer sends mail through a configured SMTP relay via gomail.
type SMTPMailer struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

func NewSMTPMailer(host string, port int, user, pass string) *SMTPMailer {
	return &SMTPMailer{Host: host, Port: port, User: user, Pass: pass, From: user}
}

func (m *SMTPMailer) SendAppointmentConfirmed(to string, details ConfirmationDetails) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your appointment is confirmed")

	body := fmt.Sprintf(
		"Dear %s,\n\nYour appointment with %s on %s from %s to %s has been confirmed.\n\nShifa Care Hospital",
		details.PatientName, details.DoctorName, details.Date, details.StartTime, details.EndTime,
	)
	msg.SetBody("text/plain", body)

	htmlBody := fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<title>Appointment Confirmed</title>
		<style>
			body { font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 0; }
			.container { background-color: #ffffff; margin: 20px auto; padding: 20px; border-radius: 8px; max-width: 600px; }
			h1 { color: #333333; }
			p { color: #666666; }
			.detail { font-weight: bold; color: #007bff; }
		</style>
	</head>
	<body>
		<div class="container">
			<h1>Appointment Confirmed</h1>
			<p>Dear %s,</p>
			<p>Your appointment has been confirmed:</p>
			<p>Doctor: <span class="detail">%s</span></p>
			<p>Date: <span class="detail">%s</span></p>
			<p>Time: <span class="detail">%s - %s</span></p>
			<p>Please arrive 15 minutes early.</p>
		</div>
	</body>
	</html>
	`, details.PatientName, details.DoctorName, details.Date, details.StartTime, details.EndTime)
	msg.AddAlternative("text/html", htmlBody)

	d := gomail.NewDialer(m.Host, m.Port, m.User, m.Pass)
	return d.DialAndSend(msg)
}
