package mail

import (
	"fmt"
	"strings"
	"time"
)

// The platform's transactional mail bodies. All templates share the Elite
// Digital Cards header/footer frame used by the admin panel mails.

const frameTop = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"></head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f5f5f5;">
  <table width="100%" cellpadding="0" cellspacing="0" style="background-color: #f5f5f5;">
    <tr><td align="center" style="padding: 20px 0;">
      <table width="600" cellpadding="0" cellspacing="0" style="background-color: white; border-radius: 8px;">
        <tr><td style="padding: 30px 40px; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); border-radius: 8px 8px 0 0;">
          <h1 style="color: white; margin: 0; font-size: 24px; text-align: center;">Elite Digital Cards</h1>
          <p style="color: rgba(255,255,255,0.9); margin: 10px 0 0 0; text-align: center; font-size: 16px;">Digital Business Cards Platform</p>
        </td></tr>
        <tr><td style="padding: 40px;">`

const frameBottom = `</td></tr>
        <tr><td style="padding: 30px 40px; background-color: #f8f9fa; border-radius: 0 0 8px 8px;">
          <div style="text-align: center; color: #666; font-size: 14px;">
            <p style="margin: 0 0 10px 0;"><strong>Need Help?</strong> Contact our support team</p>
            <p style="margin: 0;">&copy; %d Elite Digital Cards. All rights reserved.</p>
            <p style="margin: 10px 0 0 0; font-size: 12px; color: #999;">This email was sent to %s regarding your Elite Digital Cards account.</p>
          </div>
        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`

func frame(recipient, content string) string {
	return frameTop + content + fmt.Sprintf(frameBottom, time.Now().Year(), recipient)
}

// OTPSubject is the subject line for a password-reset OTP mail.
const OTPSubject = "Password Reset OTP - Elite Digital Cards"

// OTPResendSubject is the subject line for a reissued OTP mail.
const OTPResendSubject = "Password Reset OTP - Elite Digital Cards (Resend)"

// OTPBody renders the password-reset OTP mail. resend switches the intro line
// for the reissue template.
func OTPBody(recipient, otp string, resend bool) string {
	intro := "You have requested to reset your password for your Elite Digital Cards account."
	if resend {
		intro = "You have requested to resend the OTP for resetting your password for your Elite Digital Cards account."
	}
	content := fmt.Sprintf(`<h2 style="color: #333; margin: 0 0 20px 0; font-size: 20px;">Hello,</h2>
<div style="color: #555; line-height: 1.6; font-size: 16px;">
  <p style="margin: 0 0 15px 0;">%s</p>
  <p style="margin: 0 0 15px 0;">Please use the following One-Time Password (OTP) to proceed with resetting your password:</p>
  <div style="text-align: center; margin: 30px 0;">
    <div style="display: inline-block; padding: 15px 25px; background-color: #f8f9fa; border: 2px dashed #667eea; border-radius: 8px;">
      <h3 style="color: #667eea; margin: 0; font-size: 24px; letter-spacing: 3px;">%s</h3>
    </div>
  </div>
  <p style="margin: 0 0 15px 0;">This OTP will expire in <strong>5 minutes</strong>. If you did not request this password reset, please ignore this email or contact our support team.</p>
  <div style="margin: 30px 0; padding: 20px; background-color: #fff3cd; border-left: 4px solid #ffc107; border-radius: 4px;">
    <p style="margin: 0; color: #856404; font-weight: bold;">Security Notice:</p>
    <p style="margin: 5px 0 0 0; color: #856404;">Never share this OTP with anyone. Elite Digital Cards support will never ask for your OTP.</p>
  </div>
</div>`, intro, otp)
	return frame(recipient, content)
}

// AppointmentSubject is the subject line for the owner notification mail.
const AppointmentSubject = "New Appointment Booking - Elite Digital Cards"

// AppointmentBody renders the notification mail sent to a card owner when a
// visitor books an appointment.
func AppointmentBody(recipient, clientName, phone string, date time.Time, notes string) string {
	if notes == "" {
		notes = "No additional notes provided"
	}
	content := fmt.Sprintf(`<h2 style="color: #333; margin: 0 0 20px 0; font-size: 20px;">New Appointment Booking!</h2>
<div style="color: #555; line-height: 1.6; font-size: 16px;">
  <p style="margin: 0 0 20px 0;">Hello <strong>%s</strong>,</p>
  <p style="margin: 0 0 20px 0;">A potential client has booked an appointment through your digital business card. Here are the details:</p>
  <table width="100%%" cellpadding="0" cellspacing="0" style="margin: 20px 0; background-color: #f8fafc; border-radius: 10px;">
    <tr><td style="padding: 12px 20px;"><strong>Client Name:</strong> %s</td></tr>
    <tr><td style="padding: 12px 20px;"><strong>Phone Number:</strong> %s</td></tr>
    <tr><td style="padding: 12px 20px;"><strong>Appointment Date:</strong> %s</td></tr>
    <tr><td style="padding: 12px 20px;"><strong>Notes:</strong> %s</td></tr>
  </table>
  <p style="margin: 0 0 15px 0;">Make sure to follow up promptly to make a positive impression!</p>
</div>`, recipient, clientName, phone, date.Format("Mon, 02 Jan 2006 15:04"), notes)
	return frame(recipient, content)
}

// CampaignBody renders an admin campaign mail. Each line of the message
// becomes its own paragraph.
func CampaignBody(recipient, name, subject, message string) string {
	if name == "" {
		name = "Valued Client"
	}
	var paragraphs strings.Builder
	for _, line := range strings.Split(message, "\n") {
		paragraphs.WriteString(fmt.Sprintf(`<p style="margin: 0 0 20px 0;">%s</p>`, line))
	}
	content := fmt.Sprintf(`<h2 style="color: #333; margin: 0 0 20px 0; font-size: 20px;">Hello %s,</h2>
<div style="color: #555; line-height: 1.6; font-size: 16px;">%s
  <div style="background-color: #fffbeb; border-radius: 10px; padding: 20px; border-left: 4px solid #f59e0b; margin: 30px 0;">
    <p style="margin: 0 0 10px 0; color: #92400e;"><strong>Subject:</strong> %s</p>
    <p style="margin: 0; color: #92400e;">This message was sent from Elite Digital Cards platform.</p>
  </div>
</div>`, name, paragraphs.String(), subject)
	return frame(recipient, content)
}
