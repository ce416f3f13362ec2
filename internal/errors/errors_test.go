package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

// TestErrorFormatting tests the message rendering with and without cause
func TestErrorFormatting(t *testing.T) {
	plain := New(TypeInput, "years are required")
	if !strings.Contains(plain.Error(), "INPUT_ERROR") || !strings.Contains(plain.Error(), "years are required") {
		t.Errorf("unexpected rendering %q", plain.Error())
	}

	cause := stderrors.New("unexpected EOF")
	wrapped := Wrap(TypeParsing, "reading CSV row", cause)
	if !strings.Contains(wrapped.Error(), "unexpected EOF") {
		t.Errorf("expected cause in rendering, got %q", wrapped.Error())
	}
	if !stderrors.Is(wrapped, cause) {
		t.Error("expected errors.Is to see through the wrapper")
	}
}

// TestIsType tests category checks
func TestIsType(t *testing.T) {
	err := Shape("data file has no Count column")
	if !IsType(err, TypeShape) {
		t.Error("expected shape type match")
	}
	if IsType(err, TypeInput) {
		t.Error("unexpected input type match")
	}
	if IsType(stderrors.New("plain"), TypeInternal) {
		t.Error("plain errors should never match a type")
	}
}

// TestWithContext tests labelled context attachment
func TestWithContext(t *testing.T) {
	err := Input("bad county").
		WithContext("county", "Atlantis").
		WithContext("code", 999)

	if err.Context["county"] != "Atlantis" {
		t.Errorf("expected county context, got %v", err.Context)
	}
	if err.Context["code"] != 999 {
		t.Errorf("expected code context, got %v", err.Context)
	}
}

// TestConstructors tests the category helpers
func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want Type
	}{
		{name: "input", err: Input("x"), want: TypeInput},
		{name: "shape", err: Shape("x"), want: TypeShape},
		{name: "refdata", err: RefData("x", nil), want: TypeRefData},
		{name: "not found", err: NotFound("county", "Atlantis"), want: TypeNotFound},
		{name: "internal", err: Internal("x", nil), want: TypeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Type != tt.want {
				t.Errorf("expected type %s, got %s", tt.want, tt.err.Type)
			}
		})
	}

	nf := NotFound("county", "Atlantis")
	if !strings.Contains(nf.Message, "county not found: Atlantis") {
		t.Errorf("unexpected not-found message %q", nf.Message)
	}
}
