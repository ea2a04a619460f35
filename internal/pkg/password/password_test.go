package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("correct horse battery")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !Verify("correct horse battery", hash) {
		t.Fatal("expected the right password to verify")
	}
	if Verify("wrong password", hash) {
		t.Fatal("expected the wrong password to fail")
	}
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("same input")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	second, err := Hash("same input")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same input must differ")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"empty", "", false},
		{"too short", "1234567", false},
		{"minimum length", "12345678", true},
		{"long password", "a perfectly reasonable passphrase", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Validate(tt.password); got != tt.want {
				t.Fatalf("Validate(%q) = %t, want %t", tt.password, got, tt.want)
			}
		})
	}
}
