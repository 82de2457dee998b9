package constants

// NATS Subjects
const (
	// Delivery gateway: the notification workers subscribe to these and
	// hand the message to the carrier SMS API or the mail relay.
	SubjectNotifySMS   = "notify.sms.send"
	SubjectNotifyEmail = "notify.email.send"
)
