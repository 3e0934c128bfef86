package ports

import "context"

// VerificationEmail carries what is needed to render a verification message.
type VerificationEmail struct {
	UserID   string
	Email    string
	Nickname string
	Token    string
}

// VerificationSender queues verification emails. Implementations must not
// block the caller on delivery.
type VerificationSender interface {
	SendVerification(msg VerificationEmail)
}

// Email is a rendered outgoing message.
type Email struct {
	To      string
	Subject string
	Body    string
}

// EmailSender delivers a rendered message.
type EmailSender interface {
	Send(ctx context.Context, msg Email) error
}
