package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "declaration error",
			code:    "L002",
			wantMsg: "Representation not aligned with state values",
			wantCat: CategoryConfig,
		},
		{
			name:    "runtime error",
			code:    "L010",
			wantMsg: "Unknown state",
			wantCat: CategoryRuntime,
		},
		{
			name:    "binding error",
			code:    "L050",
			wantMsg: "Widget factory failed",
			wantCat: CategoryBinding,
		},
		{
			name:    "unknown error code",
			code:    "L999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	err := New("L010").WithState("selected")
	want := `L010: Unknown state (state "selected")`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	plain := &Error{Message: "test error"}
	if plain.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", plain.Error(), "test error")
	}
}

func TestErrorIsAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := New("L050").Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if !stderrors.Is(err, New("L050")) {
		t.Error("errors.Is should match errors with the same code")
	}
	if stderrors.Is(err, New("L051")) {
		t.Error("errors.Is should not match a different code")
	}

	var le *Error
	wrapped := fmt.Errorf("outer: %w", err)
	if !stderrors.As(wrapped, &le) || le.Code != "L050" {
		t.Errorf("errors.As = %v, want code L050", le)
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "L050") != nil {
		t.Error("FromError(nil) should be nil")
	}

	orig := New("L031")
	if FromError(orig, "L050") != orig {
		t.Error("FromError should return an existing *Error unchanged")
	}

	got := FromError(fmt.Errorf("x"), "L050")
	if got.Code != "L050" || got.Wrapped == nil {
		t.Errorf("FromError = %+v, want wrapped L050", got)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("L002").
		WithWidget("Tab").
		WithState("selected").
		WithElement("a#tab1").
		WithSuggestion("trim the aria list")

	out := err.Format()
	for _, want := range []string{
		"ERROR L002: Representation not aligned with state values",
		`widget Tab, state "selected", on a#tab1`,
		"Hint: trim the aria list",
		"Learn more: https://lu.dev/docs/errors/L002",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}

	compact := err.FormatCompact()
	if !strings.HasPrefix(compact, "widget Tab") || !strings.HasSuffix(compact, "L002: Representation not aligned with state values") {
		t.Errorf("FormatCompact() = %q", compact)
	}
}

func TestPrintError(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	PrintError(&buf, fmt.Errorf("plain"))
	if !strings.Contains(buf.String(), "ERROR: plain") {
		t.Errorf("PrintError() = %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText(strings.Repeat("word ", 30), 20)
	for _, l := range lines {
		if len(l) > 20 {
			t.Errorf("line %q longer than 20", l)
		}
	}
	if wrapText("", 10) != nil {
		t.Error("wrapText(\"\") should be nil")
	}
}

func TestRegistryCodes(t *testing.T) {
	for _, code := range GetAllCodes() {
		tmpl, ok := GetTemplate(code)
		if !ok {
			t.Fatalf("GetTemplate(%q) missing", code)
		}
		if tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("template %q incomplete: %+v", code, tmpl)
		}
	}
}
