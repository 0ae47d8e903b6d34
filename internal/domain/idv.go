package domain

import "encoding/json"

// IDVStatusSuccess is the only terminal status that marks a user verified.
const IDVStatusSuccess = "success"

// IDNumberTypeUSSSNLast4 identifies the last four digits of a US SSN.
const IDNumberTypeUSSSNLast4 = "us_ssn_last_4"

// ApplicantName is the legal name attached to a verification session.
type ApplicantName struct {
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// ApplicantAddress is the mailing address attached to a verification session.
type ApplicantAddress struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// ApplicantIDNumber is a government identification number.
type ApplicantIDNumber struct {
	Value string `json:"value"`
	Type  string `json:"type"`
}

// Applicant is the user payload sent when creating a verification session.
// Only ClientUserID is mandatory; everything else is prefill data.
type Applicant struct {
	ClientUserID string             `json:"client_user_id"`
	EmailAddress string             `json:"email_address,omitempty"`
	PhoneNumber  string             `json:"phone_number,omitempty"`
	DateOfBirth  string             `json:"date_of_birth,omitempty"` // YYYY-MM-DD
	Name         *ApplicantName     `json:"name,omitempty"`
	Address      *ApplicantAddress  `json:"address,omitempty"`
	IDNumber     *ApplicantIDNumber `json:"id_number,omitempty"`
}

// CreateIDVRequest parameterizes /identity_verification/create.
type CreateIDVRequest struct {
	IsShareable  bool      `json:"is_shareable"`
	TemplateID   string    `json:"template_id"`
	IsIdempotent bool      `json:"is_idempotent"`
	GaveConsent  bool      `json:"gave_consent,omitempty"`
	User         Applicant `json:"user"`
}

// VerifiedUser is the applicant data as returned by the verification service.
type VerifiedUser struct {
	Name         *ApplicantName  `json:"name,omitempty"`
	PhoneNumber  string          `json:"phone_number,omitempty"`
	EmailAddress string          `json:"email_address,omitempty"`
	DateOfBirth  string          `json:"date_of_birth,omitempty"`
	Address      json.RawMessage `json:"address,omitempty"`
}

// IdentityVerification is the subset of the external session record the
// server reads. Steps and Template are passed through to the browser
// untouched; the server never interprets them.
type IdentityVerification struct {
	ID           string          `json:"id"`
	ClientUserID string          `json:"client_user_id"`
	Status       string          `json:"status"`
	ShareableURL string          `json:"shareable_url,omitempty"`
	User         *VerifiedUser   `json:"user,omitempty"`
	Steps        json.RawMessage `json:"steps,omitempty"`
	Template     json.RawMessage `json:"template,omitempty"`
	CreatedAt    string          `json:"created_at,omitempty"`
	CompletedAt  string          `json:"completed_at,omitempty"`
	RequestID    string          `json:"request_id,omitempty"`
}

// LinkTokenRequest parameterizes /link/token/create for an
// identity-verification-only Link flow.
type LinkTokenRequest struct {
	ClientName           string            `json:"client_name"`
	Language             string            `json:"language"`
	CountryCodes         []string          `json:"country_codes"`
	User                 LinkTokenUser     `json:"user"`
	Products             []string          `json:"products"`
	IdentityVerification *LinkTokenIDVOpts `json:"identity_verification,omitempty"`
}

type LinkTokenUser struct {
	ClientUserID string `json:"client_user_id"`
	EmailAddress string `json:"email_address,omitempty"`
}

type LinkTokenIDVOpts struct {
	TemplateID string `json:"template_id"`
}

// LinkToken is the widget initialization token returned to the browser.
type LinkToken struct {
	LinkToken  string `json:"link_token"`
	Expiration string `json:"expiration,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
}
