package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validSignupRequest() SignupRequest {
	return SignupRequest{
		Email:           "alice@example.com",
		Password:        "password1",
		ConfirmPassword: "password1",
		Name:            "Alice",
		Role:            "player",
	}
}

func TestSignupRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SignupRequest)
		wantErr bool
	}{
		{"valid player", func(r *SignupRequest) {}, false},
		{"valid organizer", func(r *SignupRequest) { r.Role = "organizer" }, false},
		{"bad email", func(r *SignupRequest) { r.Email = "not-an-email" }, true},
		{"unknown role", func(r *SignupRequest) { r.Role = "admin" }, true},
		{"too short password", func(r *SignupRequest) { r.Password = "pass1"; r.ConfirmPassword = "pass1" }, true},
		{"password without digit", func(r *SignupRequest) { r.Password = "passwords"; r.ConfirmPassword = "passwords" }, true},
		{"password without letter", func(r *SignupRequest) { r.Password = "123456789"; r.ConfirmPassword = "123456789" }, true},
		{"confirm mismatch", func(r *SignupRequest) { r.ConfirmPassword = "password2" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSignupRequest()
			tt.mutate(&req)

			err := req.Validate()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	req := LoginRequest{Email: "alice@example.com", Password: "password1"}
	assert.NoError(t, req.Validate())

	req = LoginRequest{Email: "", Password: "password1"}
	assert.Error(t, req.Validate())

	req = LoginRequest{Email: "alice@example.com", Password: ""}
	assert.Error(t, req.Validate())
}
