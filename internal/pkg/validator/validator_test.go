package validator

import (
	"testing"
	"time"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"123e4567-e89b-12d3-a456-426614174000",
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B",
	}
	invalid := []string{
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"",
	}
	for _, id := range valid {
		if !IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = true, want false", id)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2025-03-10")
	if !ok {
		t.Fatal("IsValidDate(2025-03-10) = false, want true")
	}
	if date.Year() != 2025 || date.Month() != time.March || date.Day() != 10 {
		t.Errorf("IsValidDate parsed %v", date)
	}

	for _, s := range []string{"10-03-2025", "2025/03/10", "2025-13-01", "", "yesterday"} {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidTimestamp(t *testing.T) {
	if _, ok := IsValidTimestamp("2025-03-10T09:00:00Z"); !ok {
		t.Error("IsValidTimestamp(RFC3339) = false, want true")
	}
	if _, ok := IsValidTimestamp("2025-03-10 09:00:00"); ok {
		t.Error("IsValidTimestamp(non-RFC3339) = true, want false")
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"office", "remote", "field"}
	if !IsInSlice("remote", slice) {
		t.Error("IsInSlice(remote) = false, want true")
	}
	if IsInSlice("moon", slice) {
		t.Error("IsInSlice(moon) = true, want false")
	}
	if IsInSlice("office", nil) {
		t.Error("IsInSlice on nil slice = true, want false")
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "title", Message: "title is required"},
		{Field: "type", Message: "unknown type"},
	}
	if errs.Error() != "title: title is required; type: unknown type" {
		t.Errorf("Error() = %q", errs.Error())
	}
	m := errs.ToMap()
	if len(m) != 2 || m["title"] != "title is required" {
		t.Errorf("ToMap() = %v", m)
	}
}
