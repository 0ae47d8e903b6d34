package domain

import "time"

type User struct {
	UserID               string    `json:"id" dynamodbav:"user_id"`
	Username             string    `json:"username" dynamodbav:"username"`
	Email                string    `json:"email,omitempty" dynamodbav:"email"`
	FirstName            string    `json:"first_name,omitempty" dynamodbav:"first_name"`
	LastName             string    `json:"last_name,omitempty" dynamodbav:"last_name"`
	Phone                string    `json:"phone,omitempty" dynamodbav:"phone"`
	IsVerified           bool      `json:"is_verified" dynamodbav:"is_verified"`
	IDVStatus            string    `json:"idv_status,omitempty" dynamodbav:"idv_status"`
	MostRecentIDVSession string    `json:"most_recent_idv_session,omitempty" dynamodbav:"most_recent_idv_session"`
	CreatedAt            time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt            time.Time `json:"updated" dynamodbav:"updated_at"`
}

// BasicUserInfo is the subset of the user record safe to show in sign-in
// pickers and the "who am I" endpoint.
type BasicUserInfo struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
}

type SignInRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type SetIDVSessionRequest struct {
	IDVSession string `json:"idvSession" validate:"required"`
}
