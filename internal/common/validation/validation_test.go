package validation

import "testing"

type sample struct {
	Email string `validate:"required,email"`
	Name  string `validate:"max=3"`
}

func TestStruct(t *testing.T) {
	fe, err := Struct(sample{Email: "a@b.com", Name: "abc"})
	if err != nil || fe != nil {
		t.Fatalf("expected valid, got %+v, %v", fe, err)
	}

	fe, err = Struct(sample{Email: "nope", Name: "abc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fe == nil || fe.Field != "Email" || fe.Tag != "email" {
		t.Errorf("expected Email/email, got %+v", fe)
	}

	fe, _ = Struct(sample{Email: "a@b.com", Name: "abcd"})
	if fe == nil || fe.Field != "Name" || fe.Tag != "max" {
		t.Errorf("expected Name/max, got %+v", fe)
	}
}

func TestStruct_NotAStruct(t *testing.T) {
	if _, err := Struct(42); err == nil {
		t.Error("expected error for non-struct input")
	}
}
