// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendBuildReady(toEmail, customerName, orderNumber, downloadURL string) error
	SendLicenseKey(toEmail, customerName, orderNumber, licenseKey string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendBuildReady(toEmail, customerName, orderNumber, downloadURL string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Your codebase for order %s is ready", orderNumber))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Hi %s,</h2>
			<p>Your project for order <strong>%s</strong> has been generated.</p>
			<p><a href="%s" style="color: #4CAF50;">Download your codebase</a></p>
			<p>The link stays valid for a limited time; you can always request a fresh one from your dashboard.</p>
		</div>
	`, customerName, orderNumber, downloadURL)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send build-ready mail to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Build-ready mail sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendLicenseKey(toEmail, customerName, orderNumber, licenseKey string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("License key for order %s", orderNumber))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Hi %s,</h2>
			<p>Your license key for order <strong>%s</strong>:</p>
			<h1 style="color: #4CAF50; letter-spacing: 3px;">%s</h1>
			<p>Keep this key safe. It is also embedded in the LICENSE.md of your generated project.</p>
		</div>
	`, customerName, orderNumber, licenseKey)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send license mail to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] License mail sent to %s\n", toEmail)
	return nil
}
