package services

import (
	"context"
	"errors"
	"testing"
)

type fakeMailer struct {
	to   string
	code string
}

func (m *fakeMailer) SendResetEmail(_ context.Context, to, code string) error {
	m.to, m.code = to, code
	return nil
}

func TestRegisterAndLogin(t *testing.T) {
	s := NewAuthService(newTestDB(t), "test-secret", nil)

	user, err := s.Register(RegisterRequest{
		Name: "Julio", Email: "julio@example.com", Password: "s3cret", Age: 30,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Goals.Calorias == 0 {
		t.Error("expected default goals on registration")
	}

	if _, err := s.Register(RegisterRequest{Name: "Dup", Email: "julio@example.com", Password: "x"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate email: expected ErrConflict, got %v", err)
	}

	token, _, err := s.Login("julio@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	if _, _, err := s.Login("julio@example.com", "wrong"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("wrong password: expected ErrForbidden, got %v", err)
	}
	if _, _, err := s.Login("nobody@example.com", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown email: expected ErrNotFound, got %v", err)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	mailer := &fakeMailer{}
	s := NewAuthService(newTestDB(t), "test-secret", mailer)
	if _, err := s.Register(RegisterRequest{Name: "J", Email: "j@example.com", Password: "old"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// unknown email leaks nothing and sends nothing
	if err := s.ForgotPassword(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("ForgotPassword unknown email: %v", err)
	}
	if mailer.code != "" {
		t.Fatal("no mail should be sent for unknown email")
	}

	if err := s.ForgotPassword(context.Background(), "j@example.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	if len(mailer.code) != 6 {
		t.Fatalf("expected a 6-digit code, got %q", mailer.code)
	}

	var ve *ValidationError
	if err := s.ResetPassword("j@example.com", "000000", "new"); !errors.As(err, &ve) {
		t.Fatalf("wrong code: expected ValidationError, got %v", err)
	}

	if err := s.ResetPassword("j@example.com", mailer.code, "newpass"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if _, _, err := s.Login("j@example.com", "newpass"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}

	// the code is single use
	if err := s.ResetPassword("j@example.com", mailer.code, "again"); !errors.As(err, &ve) {
		t.Fatalf("reused code: expected ValidationError, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	s := NewAuthService(newTestDB(t), "test-secret", nil)
	user, err := s.Register(RegisterRequest{Name: "J", Email: "j@example.com", Password: "pw", Weight: 70})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	updated, err := s.UpdateProfile(user.ID, UpdateProfileRequest{Weight: 72.5})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Weight != 72.5 {
		t.Errorf("weight not updated: %v", updated.Weight)
	}
	if updated.Name != "J" {
		t.Errorf("unset fields must be kept, name became %q", updated.Name)
	}
}
