package domain

// Webhook type and code values dispatched by the receiver. Anything else is
// logged and ignored so new products and codes stay a no-op.
const (
	WebhookTypeIdentityVerification = "IDENTITY_VERIFICATION"

	WebhookCodeStepUpdated   = "STEP_UPDATED"
	WebhookCodeStatusUpdated = "STATUS_UPDATED"
)

// WebhookPayload is the inbound notification body. Unknown fields are
// ignored on decode.
type WebhookPayload struct {
	WebhookType            string `json:"webhook_type"`
	WebhookCode            string `json:"webhook_code"`
	Environment            string `json:"environment"`
	IdentityVerificationID string `json:"identity_verification_id"`
}
