package validation

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/kbukum/seqkit/errors"
)

func TestValidatorRequired(t *testing.T) {
	v := New()
	v.Required("name", "orders")
	if v.HasErrors() {
		t.Error("expected no errors for valid input")
	}

	v2 := New()
	v2.Required("name", "")
	if !v2.HasErrors() {
		t.Error("expected error for empty required field")
	}

	v3 := New()
	v3.Required("name", "   ")
	if !v3.HasErrors() {
		t.Error("expected error for whitespace-only required field")
	}
}

func TestValidatorRange(t *testing.T) {
	v := New()
	v.Range("initial_capacity", 64, 0, 1024)
	if v.HasErrors() {
		t.Error("expected no error for value in range")
	}

	v2 := New()
	v2.Range("initial_capacity", -1, 0, 1024)
	if !v2.HasErrors() {
		t.Error("expected error for value below range")
	}

	v3 := New()
	v3.Range("initial_capacity", 2048, 0, 1024)
	if !v3.HasErrors() {
		t.Error("expected error for value above range")
	}
}

func TestValidatorBetween(t *testing.T) {
	if New().Between("sample_rate", 0.25, 0, 1).HasErrors() {
		t.Error("expected no error for value in range")
	}
	if New().Between("sample_rate", 1, 0, 1).HasErrors() {
		t.Error("expected bounds to be inclusive")
	}
	v := New().Between("sample_rate", 1.5, 0, 1)
	if !v.HasErrors() {
		t.Fatal("expected error for value above range")
	}
	if got := v.Errors()[0].Message; got != "must be between 0 and 1" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestValidatorOneOf(t *testing.T) {
	v := New()
	v.OneOf("environment", "production", "development", "production")
	if v.HasErrors() {
		t.Error("expected no error for valid oneOf value")
	}

	v2 := New()
	v2.OneOf("environment", "qa", "development", "production")
	if !v2.HasErrors() {
		t.Error("expected error for invalid oneOf value")
	}

	// Empty should be skipped
	v3 := New()
	v3.OneOf("environment", "", "development")
	if v3.HasErrors() {
		t.Error("expected no error for empty oneOf value")
	}
}

func TestValidatorCheck(t *testing.T) {
	v := New()
	v.Check(true, "field", "should pass")
	if v.HasErrors() {
		t.Error("expected no error for true condition")
	}

	v2 := New()
	v2.Check(false, "field", "custom error")
	if !v2.HasErrors() {
		t.Error("expected error for false condition")
	}
	if v2.Errors()[0].Message != "custom error" {
		t.Errorf("expected 'custom error', got %q", v2.Errors()[0].Message)
	}
}

func TestValidatorValidate(t *testing.T) {
	v := New()
	v.Required("name", "orders")
	appErr := v.Validate()
	if appErr != nil {
		t.Error("expected nil for valid input")
	}

	v2 := New()
	v2.Required("name", "")
	v2.Required("environment", "")
	appErr2 := v2.Validate()
	if appErr2 == nil {
		t.Fatal("expected error")
	}
	if appErr2.Code != errors.ErrCodeInvalidConfig {
		t.Errorf("expected INVALID_CONFIG, got %s", appErr2.Code)
	}
	if appErr2.Details == nil {
		t.Fatal("expected details in error")
	}
	if !strings.Contains(appErr2.Message, "name") || !strings.Contains(appErr2.Message, "environment") {
		t.Errorf("expected both fields in message, got %q", appErr2.Message)
	}
}

func TestValidatorChaining(t *testing.T) {
	v := New()
	result := v.Required("name", "orders").Range("initial_capacity", 16, 0, 1024).Check(true, "trace", "")
	if result != v {
		t.Error("expected chaining to return same validator")
	}
	if v.HasErrors() {
		t.Error("expected no errors for valid chained validation")
	}
}

func TestValidatorForSection(t *testing.T) {
	appErr := For("pipeline").Range("initial_capacity", -1, 0, 1024).Validate()
	if appErr == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(appErr.Message, "pipeline.initial_capacity: must be between 0 and 1024") {
		t.Errorf("expected section-qualified key, got %q", appErr.Message)
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 1 || fields[0].Field != "pipeline.initial_capacity" {
		t.Errorf("unexpected field details %#v", appErr.Details["fields"])
	}
}

func TestValidatorStruct(t *testing.T) {
	type Exporter struct {
		Endpoint string `mapstructure:"endpoint" validate:"required"`
		Retries  int    `mapstructure:"retries" validate:"gte=0"`
	}

	v := For("observability").
		Check(false, "enabled", "needs an endpoint").
		Struct(Exporter{Retries: -1})
	got := v.Errors()
	if len(got) != 3 {
		t.Fatalf("expected 3 violations, got %#v", got)
	}
	want := []string{"observability.enabled", "observability.endpoint", "observability.retries"}
	for i, key := range want {
		if got[i].Field != key {
			t.Errorf("violation %d: expected %q, got %q", i, key, got[i].Field)
		}
	}

	if For("observability").Struct(Exporter{Endpoint: "localhost:4318"}).HasErrors() {
		t.Error("expected valid struct to add no violations")
	}
}

func TestStructValidateValid(t *testing.T) {
	type Settings struct {
		Name     string `mapstructure:"name" validate:"required"`
		Capacity int    `mapstructure:"initial_capacity" validate:"gte=0,lte=1024"`
	}

	err := Validate(Settings{Name: "orders", Capacity: 16})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestStructValidateInvalid(t *testing.T) {
	type Settings struct {
		Name     string `mapstructure:"name" validate:"required"`
		Capacity int    `mapstructure:"initial_capacity" validate:"gte=0,lte=1024"`
	}

	err := Validate(Settings{Name: "", Capacity: -1})
	if err == nil {
		t.Fatal("expected validation error")
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "name") {
		t.Errorf("expected error to mention 'name', got %q", errStr)
	}
	if !strings.Contains(errStr, "initial_capacity: must be at least 0") {
		t.Errorf("expected error to mention initial_capacity, got %q", errStr)
	}
	if !stderrors.Is(err, errors.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestStructValidateUntaggedFieldName(t *testing.T) {
	type Input struct {
		ChunkSize int `validate:"min=1"`
	}

	err := Validate(Input{ChunkSize: 0})
	if err == nil {
		t.Fatal("expected error for chunk size below minimum")
	}
	if !strings.Contains(err.Error(), "chunk_size") {
		t.Errorf("expected snake_case field name, got %q", err.Error())
	}
}

func TestStructValidateStringLength(t *testing.T) {
	type Input struct {
		Code string `mapstructure:"code" validate:"required,min=3,max=10"`
	}

	if err := Validate(Input{Code: "abc"}); err != nil {
		t.Errorf("expected valid, got %v", err)
	}

	err := Validate(Input{Code: "ab"})
	if err == nil {
		t.Fatal("expected error for code too short")
	}
	if !strings.Contains(err.Error(), "3 characters") {
		t.Errorf("expected length message, got %q", err.Error())
	}
}
