package adapters

import "testing"

func TestPasswordService_HashAndVerify(t *testing.T) {
	service := NewPasswordService()

	hash, err := service.HashPassword("SuperSecret123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "SuperSecret123" {
		t.Fatal("hash must not equal the plain password")
	}

	if err := service.VerifyPassword(hash, "SuperSecret123"); err != nil {
		t.Errorf("VerifyPassword() with correct password: %v", err)
	}
	if err := service.VerifyPassword(hash, "WrongPassword1"); err == nil {
		t.Error("VerifyPassword() with wrong password should fail")
	}
}

func TestPasswordService_ValidatePasswordStrength(t *testing.T) {
	service := NewPasswordService()

	if err := service.ValidatePasswordStrength("short"); err == nil {
		t.Error("passwords under 8 characters should be rejected")
	}
	if err := service.ValidatePasswordStrength("longenough"); err != nil {
		t.Errorf("ValidatePasswordStrength() error = %v", err)
	}
}
