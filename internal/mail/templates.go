package mail

import "fmt"

// VerificationMessage builds the account verification email.
func VerificationMessage(frontendURL, to, token string) Message {
	link := fmt.Sprintf("%s/verify-email?token=%s", frontendURL, token)
	html := fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2>Welcome!</h2>
        <p>Thank you for signing up. Please verify your email address by clicking the link below:</p>
        <p><a href="%s">Verify Email Address</a></p>
        <p>Or copy and paste this link in your browser:</p>
        <p style="word-break: break-all; color: #666;">%s</p>
        <p><strong>This link will expire in 24 hours.</strong></p>
        <p style="color: #666; font-size: 12px;">If you did not sign up, please ignore this email.</p>
      </div>`, link, link)

	return Message{
		To:      to,
		Subject: "Verify Your Account",
		HTML:    html,
	}
}

// PasswordResetMessage builds the password reset email.
func PasswordResetMessage(frontendURL, to, token string) Message {
	link := fmt.Sprintf("%s/reset-password?token=%s", frontendURL, token)
	html := fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2>Password Reset Request</h2>
        <p>You requested to reset your password. Click the link below to set a new one:</p>
        <p><a href="%s">Reset Password</a></p>
        <p>Or copy and paste this link in your browser:</p>
        <p style="word-break: break-all; color: #666;">%s</p>
        <p><strong>This link will expire in 1 hour.</strong></p>
        <p style="color: #666; font-size: 12px;">If you did not request a password reset, please ignore this email and your password will remain unchanged.</p>
      </div>`, link, link)

	return Message{
		To:      to,
		Subject: "Reset Your Password",
		HTML:    html,
	}
}
