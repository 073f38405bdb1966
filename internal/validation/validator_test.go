package validation

import (
	"strings"
	"testing"

	apperrors "github.com/triplogapp/triplog-server/internal/errors"
)

type sampleConfig struct {
	ProjectID string `validate:"required"`
	WriteRate int    `validate:"min=1"`
	Format    string `validate:"oneof=json pretty"`
}

func TestValidateOK(t *testing.T) {
	v := New()
	err := v.Validate(sampleConfig{ProjectID: "triplog-prod", WriteRate: 10, Format: "json"})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateReportsAllFields(t *testing.T) {
	v := New()
	err := v.Validate(sampleConfig{Format: "xml"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !apperrors.Is(err, apperrors.ErrValidation) {
		t.Errorf("expected a validation domain error, got %v", err)
	}
	msg := err.Error()
	for _, want := range []string{"ProjectID is required", "WriteRate must be at least 1", "Format must be one of"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}
