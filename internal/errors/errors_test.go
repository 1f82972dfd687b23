package errors

import (
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
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
			name:    "store error",
			code:    "D001",
			wantMsg: "Panel not found",
			wantCat: CategoryStore,
		},
		{
			name:    "config error",
			code:    "D120",
			wantMsg: "Invalid configuration file",
			wantCat: CategoryConfig,
		},
		{
			name:    "loader error",
			code:    "D142",
			wantMsg: "Unsupported panel file format",
			wantCat: CategoryLoader,
		},
		{
			name:    "unknown error code",
			code:    "D999",
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

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "panel %q not configured", "hero")
	if err.Message != `panel "hero" not configured` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Category != CategoryCLI {
		t.Errorf("Category = %q, want %q", err.Category, CategoryCLI)
	}
}

func TestDialError_Error(t *testing.T) {
	err := New("D001")
	if got, want := err.Error(), "D001: Panel not found"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err2 := &DialError{Message: "test error"}
	if err2.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", err2.Error(), "test error")
	}

	cause := stderrors.New("disk full")
	err3 := New("D161").Wrap(cause)
	if got, want := err3.Error(), "D161: Export write failed: disk full"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestDialError_WithLocation(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "panel.toml")
	content := `opacity = [0.8, 0, 1]
enabled = true

[shadow]
blur = [24, 0,
spread = 2
`
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	err := New("D141").WithLocation(tmpFile, 5, 8)
	if err.Location == nil {
		t.Fatal("Location is nil")
	}
	if err.Location.Line != 5 || err.Location.Column != 8 {
		t.Errorf("Location = %v", err.Location)
	}
	if len(err.Context) == 0 {
		t.Error("Context should not be empty")
	}
	if !strings.Contains(strings.Join(err.Context, "\n"), "blur = [24, 0,") {
		t.Errorf("Context = %v, want line 5 included", err.Context)
	}
}

func TestDialError_WrapAndUnwrap(t *testing.T) {
	inner := New("D002")
	outer := New("D001").Wrap(inner)

	if outer.Unwrap() != inner {
		t.Error("Unwrap() should return wrapped error")
	}
	var target *DialError
	if !stderrors.As(outer.Unwrap(), &target) || target.Code != "D002" {
		t.Error("errors.As should find the wrapped DialError")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "D001") != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	de := New("D001")
	if FromError(de, "D002") != de {
		t.Error("FromError should return DialError as-is")
	}

	stdErr := stderrors.New("boom")
	result := FromError(stdErr, "D120")
	if result.Wrapped != stdErr {
		t.Error("Standard error should be wrapped")
	}
	if !stderrors.Is(result, stdErr) {
		t.Error("errors.Is should see through DialError")
	}
}

func TestLocation_String(t *testing.T) {
	tests := []struct {
		name string
		loc  *Location
		want string
	}{
		{name: "nil location", loc: nil, want: ""},
		{name: "with column", loc: &Location{File: "a.toml", Line: 10, Column: 5}, want: "a.toml:10:5"},
		{name: "without column", loc: &Location{File: "a.toml", Line: 10}, want: "a.toml:10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.loc.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("D141").
		WithDetail("unexpected end of array").
		WithSuggestion("Close the bracket")
	out := err.Format()

	for _, want := range []string{"ERROR D141: Panel file could not be parsed", "unexpected end of array", "Hint: Close the bracket"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	err := New("D141")
	err.Location = &Location{File: "hero.toml", Line: 3}
	if got, want := err.FormatCompact(), "hero.toml:3: D141: Panel file could not be parsed"; got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}

	err = New("D161").WithDetail("exports/card.json").Wrap(stderrors.New("disk full"))
	if got, want := err.FormatCompact(), "D161: Export write failed (exports/card.json): disk full"; got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestMarshalJSON(t *testing.T) {
	err := New("D061").WithSuggestion("send a number")
	data, mErr := json.Marshal(err)
	if mErr != nil {
		t.Fatal(mErr)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got["code"] != "D061" || got["category"] != "transport" || got["suggestion"] != "send a number" {
		t.Errorf("unexpected JSON: %s", data)
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six", 10)
	for _, line := range lines {
		if len(line) > 10 {
			t.Errorf("line %q longer than width", line)
		}
	}
	if strings.Join(lines, " ") != "one two three four five six" {
		t.Errorf("wrapText lost words: %v", lines)
	}
}
