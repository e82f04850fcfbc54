// Package notify renders and sends the transactional emails: ticket
// delivery with the QR code attached inline, and admin replies to
// inquiries.
package notify

import (
	"bytes"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/domodwyer/mailyak/v3"

	"wknd-backend/config"
	"wknd-backend/internal/status"
	"wknd-backend/models"
)

// inlineQRName doubles as the content id referenced from the HTML body.
const inlineQRName = "ticket-qr-code.png"

type Mailer struct {
	addr string
	host string
	user string
	pass string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		addr: fmt.Sprintf("%s:%s", cfg.SMTPHost, cfg.SMTPPort),
		host: cfg.SMTPHost,
		user: cfg.EmailUser,
		pass: cfg.EmailPassword,
	}
}

func (m *Mailer) newMail() *mailyak.MailYak {
	return mailyak.New(m.addr, smtp.PlainAuth("", m.user, m.pass, m.host))
}

// SendTicket delivers the issued ticket to the holder with the QR code as
// an inline attachment. A transport or auth failure is fatal for ticket
// issuance: the ticket is not considered issued until the holder has been
// notified.
func (m *Mailer) SendTicket(ticket *models.Ticket, qrPNG []byte) error {
	mail := m.newMail()
	mail.From(m.user)
	mail.FromName("234WKND Events")
	mail.To(ticket.Email)
	mail.Subject("Your 234WKND Event Ticket - A Weekend Experience")
	mail.HTML().Set(ticketBody(ticket))
	mail.AttachInline(inlineQRName, bytes.NewReader(qrPNG))

	if err := mail.Send(); err != nil {
		return &status.NotificationError{Err: err}
	}
	return nil
}

// SendReply delivers an admin reply to an inquiry sender. The message is
// already flagged replied in storage by the time this runs; a failure here
// is surfaced to the caller but does not roll that flag back.
func (m *Mailer) SendReply(to, replyText string) error {
	mail := m.newMail()
	mail.From(m.user)
	mail.FromName("234WKND Support")
	mail.To(to)
	mail.Subject("Re: Your 234WKND Inquiry")
	mail.HTML().Set(replyBody(replyText))

	if err := mail.Send(); err != nil {
		return &status.NotificationError{Err: err}
	}
	return nil
}

func ticketBody(t *models.Ticket) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Your Event Ticket</title>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
    .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
    .ticket-info { background: white; padding: 20px; border-radius: 8px; margin: 20px 0; border-left: 4px solid #667eea; }
    .qr-section { text-align: center; background: white; padding: 30px; border-radius: 8px; margin: 20px 0; }
    .footer { text-align: center; margin-top: 30px; padding-top: 20px; border-top: 1px solid #ddd; color: #666; }
    .important { background: #fff3cd; border: 1px solid #ffeaa7; padding: 15px; border-radius: 5px; margin: 20px 0; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Your Ticket is Ready!</h1>
      <p>234WKND - A Weekend Experience</p>
    </div>
    <div class="content">
      <h2>Hello %s!</h2>
      <p>Thank you for booking your spot at <strong>%s</strong>. Your payment has been confirmed and your ticket is ready!</p>
      <div class="ticket-info">
        <h3>Event Details</h3>
        <p><strong>Event:</strong> %s</p>
        <p><strong>Date:</strong> %s</p>
        <p><strong>Location:</strong> %s</p>
        <p><strong>Ticket ID:</strong> %s</p>
      </div>
      <div class="qr-section">
        <h3>Your Digital Ticket</h3>
        <p>Present this QR code at the event entrance:</p>
        <img src="cid:%s" alt="Ticket QR Code" style="max-width: 250px; margin: 20px 0;">
        <p><small>Save this QR code to your phone for easy access</small></p>
      </div>
      <div class="important">
        <h4>Important Information</h4>
        <ul>
          <li>Arrive 30 minutes before the event starts</li>
          <li>Bring a valid ID for verification</li>
          <li>This ticket is non-transferable</li>
          <li>Screenshots of the QR code are acceptable</li>
        </ul>
      </div>
      <p>We're excited to see you at the event! If you have any questions, please don't hesitate to contact us.</p>
    </div>
    <div class="footer">
      <p>Need help? Contact us at <a href="mailto:support@234wknd.com">support@234wknd.com</a></p>
      <p>&copy; 2026 234WKND Events. All rights reserved.</p>
    </div>
  </div>
</body>
</html>`, t.FullName, t.EventTitle, t.EventTitle, t.EventDate, t.EventLocation, t.TicketID, inlineQRName)
}

func replyBody(replyText string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); color: white; padding: 20px; text-align: center; border-radius: 10px 10px 0 0; }
    .content { background: #f9f9f9; padding: 20px; border-radius: 0 0 10px 10px; }
    .footer { text-align: center; margin-top: 20px; padding-top: 20px; border-top: 1px solid #ddd; color: #666; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>234WKND Support</h1>
    </div>
    <div class="content">
      <h2>Hello!</h2>
      <p>Thank you for reaching out to us. Here's our response to your inquiry:</p>
      <div style="background: white; padding: 15px; border-radius: 5px; margin: 20px 0; border-left: 4px solid #667eea;">
        %s
      </div>
      <p>If you have any further questions, please don't hesitate to contact us.</p>
      <p>Best regards,<br>The 234WKND Team</p>
    </div>
    <div class="footer">
      <p>Contact us at <a href="mailto:support@234wknd.com">support@234wknd.com</a></p>
      <p>&copy; 2026 234WKND Events. All rights reserved.</p>
    </div>
  </div>
</body>
</html>`, strings.ReplaceAll(replyText, "\n", "<br>"))
}
