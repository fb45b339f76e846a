package validators

import (
	"errors"
	"net"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestIsEmailDomainValid(t *testing.T) {
	origMX, origIP := lookupMX, lookupIP
	t.Cleanup(func() { lookupMX, lookupIP = origMX, origIP })

	lookupMX = func(domain string) ([]*net.MX, error) {
		if domain == "mail.example" {
			return []*net.MX{{Host: "mx.mail.example."}}, nil
		}
		return nil, errors.New("no mx")
	}
	lookupIP = func(domain string) ([]net.IP, error) {
		if domain == "web.example" {
			return []net.IP{net.ParseIP("192.0.2.1")}, nil
		}
		return nil, errors.New("no host")
	}

	tests := map[string]bool{
		"vet@mail.example": true,
		"vet@web.example":  true,
		"vet@nowhere.test": false,
		"vet@":             false,
		"no-at-sign":       false,
	}
	for email, want := range tests {
		if got := IsEmailDomainValid(email); got != want {
			t.Errorf("IsEmailDomainValid(%q) = %v, want %v", email, got, want)
		}
	}
}

func TestBindingTags(t *testing.T) {
	v := validator.New()
	if err := register(v); err != nil {
		t.Fatalf("register: %v", err)
	}

	type req struct {
		Status      string `validate:"omitempty,visit_status"`
		Sex         string `validate:"omitempty,pet_sex"`
		ContentType string `validate:"required,image_content_type"`
	}

	tests := []struct {
		name string
		in   req
		ok   bool
	}{
		{"valid", req{Status: "completed", Sex: "Female", ContentType: "image/webp"}, true},
		{"empty optionals", req{ContentType: "image/jpeg"}, true},
		{"cancelled on create", req{Status: "cancelled", ContentType: "image/jpeg"}, false},
		{"bad sex", req{Sex: "other", ContentType: "image/jpeg"}, false},
		{"pdf", req{ContentType: "application/pdf"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if (err == nil) != tt.ok {
				t.Fatalf("err = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}
