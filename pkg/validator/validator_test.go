package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

type testPayload struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Age      int    `json:"age" validate:"gte=18"`
}

func TestValidateStructSuccess(t *testing.T) {
	payload := testPayload{
		Username: "alice",
		Email:    "alice@example.com",
		Age:      20,
	}

	if err := ValidateStruct(payload); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidateStructFailures(t *testing.T) {
	payload := testPayload{
		Username: "",
		Email:    "invalid",
		Age:      10,
	}

	err := ValidateStruct(payload)
	if err == nil {
		t.Fatal("expected validation error")
	}

	vErrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}

	if len(vErrs) != 3 {
		t.Fatalf("expected 3 validation errors, got %d", len(vErrs))
	}

	foundEmail := false
	for _, v := range vErrs {
		if v.Field == "email" {
			foundEmail = true
		}
	}

	if !foundEmail {
		t.Fatal("expected email field to be present in validation errors")
	}
}

func TestRegisterValidation(t *testing.T) {
	err := RegisterValidation("medres", func(fl validator.FieldLevel) bool {
		return fl.Field().String() == "medres"
	})
	if err != nil {
		t.Fatalf("register validation: %v", err)
	}

	type custom struct {
		Value string `validate:"medres"`
	}

	if err := ValidateStruct(custom{Value: "medres"}); err != nil {
		t.Fatalf("expected validation to pass, got %v", err)
	}
	if err := ValidateStruct(custom{Value: "other"}); err == nil {
		t.Fatal("expected validation to fail for non-matching value")
	}
}

func TestRegisterEnum(t *testing.T) {
	if err := RegisterEnum("test_priority", "high", "medium", "low"); err != nil {
		t.Fatalf("register enum: %v", err)
	}

	type payload struct {
		Priority string `json:"priority" validate:"omitempty,test_priority"`
	}

	for _, value := range []string{"", "high", "LOW"} {
		if err := ValidateStruct(payload{Priority: value}); err != nil {
			t.Fatalf("expected %q to pass, got %v", value, err)
		}
	}

	err := ValidateStruct(payload{Priority: "urgent"})
	vErrs, ok := err.(ValidationErrors)
	if !ok || len(vErrs) != 1 || vErrs[0].Field != "priority" || vErrs[0].Tag != "test_priority" {
		t.Fatalf("expected a single priority failure, got %v", err)
	}
}
