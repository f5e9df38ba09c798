package validation

import "testing"

func TestValidateMobile(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"9876543210", "9876543210", true},
		{"+919876543210", "9876543210", true},
		{" 9876543210 ", "9876543210", true},
		{"987654321", "", false},
		{"98765432101", "", false},
		{"98765abcde", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ValidateMobile(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ValidateMobile(%q) = (%q, %v), want (%q, %v)",
				tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hello\x00world  "); got != "helloworld" {
		t.Errorf("SanitizeString = %q", got)
	}
}

func TestValidateStruct(t *testing.T) {
	type payload struct {
		Email string `validate:"required,email"`
		Name  string `validate:"required,min=2"`
	}

	v := NewValidator()

	if err := v.ValidateStruct(&payload{Email: "a@b.com", Name: "ok"}); err != nil {
		t.Errorf("valid struct should pass, got %v", err)
	}

	err := v.ValidateStruct(&payload{Email: "not-an-email", Name: "x"})
	if err == nil {
		t.Fatal("invalid struct should fail")
	}

	formatted := FormatValidationErrors(err)
	if formatted["email"] == "" || formatted["name"] == "" {
		t.Errorf("formatted errors missing fields: %v", formatted)
	}
}
