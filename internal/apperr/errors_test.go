package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestStatusByKind(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{Conflict("dup"), http.StatusConflict},
		{Authentication("who"), http.StatusUnauthorized},
		{Authorization("no"), http.StatusForbidden},
		{NotFound("gone"), http.StatusNotFound},
		{Internal(errors.New("db down"), "Server error"), http.StatusInternalServerError},
		{Conflict("dup").WithStatus(http.StatusBadRequest), http.StatusBadRequest},
	}
	for _, tc := range cases {
		if got := tc.err.Status(); got != tc.want {
			t.Errorf("%s: status = %d, want %d", tc.err.Kind, got, tc.want)
		}
	}
}

func TestFromWrapsUnknownErrors(t *testing.T) {
	cause := errors.New("connection reset")
	e := From(cause)
	if e.Kind != KindInternal || e.Message != "Server error" {
		t.Fatalf("unexpected %+v", e)
	}
	if !errors.Is(e, cause) {
		t.Fatal("cause lost")
	}

	wrapped := fmt.Errorf("register: %w", Conflict("User already exists"))
	if got := From(wrapped); got.Kind != KindConflict {
		t.Fatalf("kind = %s, want conflict", got.Kind)
	}
	if !IsKind(wrapped, KindConflict) {
		t.Fatal("IsKind should see through wrapping")
	}
}

func TestBindingMessages(t *testing.T) {
	type signup struct {
		Name  string `binding:"required"`
		Email string `binding:"required,email"`
	}
	v := validator.New()
	v.SetTagName("binding")

	if e := Binding(v.Struct(signup{Email: "a@x.com"}), "Missing fields"); e.Kind != KindValidation || e.Message != "Missing fields" {
		t.Errorf("missing name: %+v", e)
	}
	if e := Binding(v.Struct(signup{Name: "A", Email: "not-an-email"}), "Missing fields"); e.Message != MsgInvalidEmail {
		t.Errorf("bad email: %+v", e)
	}
	if e := Binding(errors.New("unexpected EOF"), "Missing fields"); e.Message != "Missing fields" {
		t.Errorf("malformed body: %+v", e)
	}
}
