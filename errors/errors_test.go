package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseParse,
				Kind:   KindInvalidVariant,
				Path:   []string{"contracts", "wccd", "init"},
				Detail: "unexpected tag 9",
			},
			contains: []string{"[parse]", "invalid_variant", "contracts.wccd.init: unexpected tag 9"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseEmit,
				Kind:  KindIO,
			},
			contains: []string{"[emit]", "io"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindInvalidData,
				Detail: "module interface",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[load]", "invalid_data", "module interface", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseParse,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not see through to cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseParse,
		Kind:  KindInvalidVariant,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseParse, Kind: KindInvalidVariant}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseLoad, Kind: KindInvalidVariant}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseParse, Kind: KindInvalidData}) {
		t.Error("Is should not match different kind")
	}

	var wrapped error = Wrap(PhaseLoad, KindInvalidData, err, "outer")
	if !errors.Is(wrapped, &Error{Phase: PhaseParse, Kind: KindInvalidVariant}) {
		t.Error("errors.Is should match wrapped error")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseParse, KindInvalidData).
		Path("contracts", "cis2").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %d", "size length", 7).
		Build()

	if err.Phase != PhaseParse {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseParse)
	}
	if err.Kind != KindInvalidData {
		t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidData)
	}
	if len(err.Path) != 2 || err.Path[0] != "contracts" || err.Path[1] != "cis2" {
		t.Errorf("Path = %v, want [contracts cis2]", err.Path)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected size length, got 7" {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("InvalidData", func(t *testing.T) {
		err := InvalidData(PhaseParse, []string{"field"}, "bad")
		if err.Kind != KindInvalidData || err.Detail != "bad" {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("InvalidTag", func(t *testing.T) {
		err := InvalidTag(PhaseParse, nil, "schema type", 77)
		if err.Kind != KindInvalidVariant {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidVariant)
		}
		if !strings.Contains(err.Detail, "77") {
			t.Errorf("Detail = %v, should contain tag", err.Detail)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseParse, "schema version 9")
		if err.Kind != KindUnsupported {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupported)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseConfig, "config file", "ccdgen.yaml")
		if err.Kind != KindNotFound || err.Detail != `config file "ccdgen.yaml" not found` {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("Load", func(t *testing.T) {
		cause := errors.New("boom")
		err := Load("module reference", cause)
		if err.Phase != PhaseLoad || !errors.Is(err, cause) {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("IO", func(t *testing.T) {
		err := IO(PhaseEmit, "out/x.ts", errors.New("denied"))
		if err.Kind != KindIO || err.Path[0] != "out/x.ts" {
			t.Errorf("got %+v", err)
		}
	})
}
