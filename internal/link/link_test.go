package link

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stratovia/filebridge/internal/domain"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{name: "simple", filename: "report.docx"},
		{name: "spaces", filename: "q3 results.xlsx"},
		{name: "unicode", filename: "überblick.pptx"},
		{name: "dots", filename: "v1.2.final.docx"},
		{name: "single char", filename: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := Encode(tt.filename)

			got, err := Decode(token)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.filename {
				t.Errorf("expected %q, got %q", tt.filename, got)
			}
		})
	}
}

func TestEncode_URLSafe(t *testing.T) {
	// Filenames that produce + and / in standard base64 must not in the
	// URL-safe alphabet.
	token := Encode("a?b>c~~~")
	for _, c := range token {
		if c == '+' || c == '/' || c == '=' {
			t.Errorf("token %q contains URL-unsafe character %q", token, c)
		}
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "not base64", token: "!!!not-base64!!!"},
		{name: "interior padding", token: "ab=cd"},
		{name: "only padding", token: "===="},
		{
			name:  "valid base64 but not utf8",
			token: base64.RawURLEncoding.EncodeToString([]byte{0xff, 0xfe, 0xfd}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.token)
			if !errors.Is(err, domain.ErrInvalidLink) {
				t.Errorf("expected ErrInvalidLink, got %v", err)
			}
		})
	}
}

func TestDecode_ToleratesPadding(t *testing.T) {
	// Clients sometimes re-pad tokens; trailing = is accepted.
	padded := base64.URLEncoding.EncodeToString([]byte("deck.pptx"))

	got, err := Decode(padded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "deck.pptx" {
		t.Errorf("expected deck.pptx, got %q", got)
	}
}
