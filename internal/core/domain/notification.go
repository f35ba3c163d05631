package domain

// NotificationTemplate names a message layout known to the notification dispatcher.
type NotificationTemplate string

const (
	TemplateEmailVerification NotificationTemplate = "email_verification"
	TemplatePasswordReset     NotificationTemplate = "password_reset"
)

// Notification is an outbound message addressed to a user.
type Notification struct {
	Template  NotificationTemplate `json:"template"`
	Recipient string               `json:"recipient"`
	Username  string               `json:"username"`
	Token     string               `json:"token"`
	Link      string               `json:"link"`
}
