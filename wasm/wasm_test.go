package wasm

import (
	"context"
	"crypto/sha256"
	"errors"
	"strings"
	"testing"

	cgerrors "github.com/wippyai/contractgen/errors"
	"github.com/wippyai/contractgen/internal/wasmtest"
)

func TestParseModule(t *testing.T) {
	data := wasmtest.New().
		Custom("first", []byte{1, 2}).
		Func("init_a", "a.x").
		Memory("memory").
		TrailingCustom("last", nil).
		Build()

	m, err := ParseModule(data)
	if err != nil {
		t.Fatalf("ParseModule: %v", err)
	}
	if len(m.Exports) != 3 {
		t.Fatalf("expected 3 exports, got %d", len(m.Exports))
	}
	want := []Export{
		{Name: "init_a", Kind: KindFunc, Idx: 0},
		{Name: "a.x", Kind: KindFunc, Idx: 1},
		{Name: "memory", Kind: KindMemory, Idx: 0},
	}
	for i, e := range want {
		if m.Exports[i] != e {
			t.Errorf("export %d: got %+v, want %+v", i, m.Exports[i], e)
		}
	}
	if got := len(m.FunctionExports()); got != 2 {
		t.Errorf("expected 2 function exports, got %d", got)
	}
	if len(m.CustomSections) != 2 {
		t.Fatalf("expected 2 custom sections, got %d", len(m.CustomSections))
	}
	if m.CustomSections[0].Name != "first" || string(m.CustomSections[0].Data) != "\x01\x02" {
		t.Errorf("unexpected first section %+v", m.CustomSections[0])
	}
	if m.CustomSections[1].Name != "last" || len(m.CustomSections[1].Data) != 0 {
		t.Errorf("unexpected last section %+v", m.CustomSections[1])
	}
}

func TestParseModule_Errors(t *testing.T) {
	valid := wasmtest.New().Func("init_a").Build()

	tests := []struct {
		name string
		data []byte
		want error
		msg  string
	}{
		{name: "empty", data: nil, msg: "header"},
		{name: "bad magic", data: []byte{0, 'a', 's', 'n', 1, 0, 0, 0}, want: ErrInvalidMagic},
		{name: "bad version", data: []byte{0, 'a', 's', 'm', 2, 0, 0, 0}, want: ErrInvalidVersion},
		{name: "truncated", data: valid[:len(valid)-1], msg: "section data"},
		{name: "unknown section", data: append(append([]byte{}, valid[:8]...), 0x20, 0x00), msg: "unknown section"},
		{name: "out of order", data: append(append([]byte{}, valid...), 0x01, 0x01, 0x00), msg: "out of order"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseModule(tt.data)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if tt.msg != "" && !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("expected error containing %q, got %v", tt.msg, err)
			}
		})
	}
}

func TestVersionedModuleSourceFromBuffer(t *testing.T) {
	module := wasmtest.New().Func("init_a").Build()
	data := wasmtest.Versioned(1, module)

	src, err := VersionedModuleSourceFromBuffer(data)
	if err != nil {
		t.Fatalf("VersionedModuleSourceFromBuffer: %v", err)
	}
	if src.Version != 1 {
		t.Errorf("expected version 1, got %d", src.Version)
	}
	if string(src.Source) != string(module) {
		t.Error("source bytes differ")
	}
	if string(src.Bytes()) != string(data) {
		t.Error("Bytes does not reproduce the input")
	}

	trailing := append(append([]byte{}, data...), 0xff)
	if _, err := VersionedModuleSourceFromBuffer(trailing); err != nil {
		t.Errorf("trailing bytes should be ignored: %v", err)
	}
}

func TestVersionedModuleSourceFromBuffer_Errors(t *testing.T) {
	module := wasmtest.New().Build()

	_, err := VersionedModuleSourceFromBuffer(wasmtest.Versioned(2, module))
	if err == nil || !strings.Contains(err.Error(), "module version 2") {
		t.Errorf("expected unsupported version error, got %v", err)
	}
	if !errors.Is(err, cgerrors.Unsupported(cgerrors.PhaseParse, "")) {
		t.Errorf("expected unsupported kind, got %v", err)
	}

	short := wasmtest.Versioned(0, module)
	if _, err := VersionedModuleSourceFromBuffer(short[:len(short)-1]); err == nil {
		t.Error("expected error for truncated source")
	}
	if _, err := VersionedModuleSourceFromBuffer([]byte{0, 0}); err == nil {
		t.Error("expected error for truncated header")
	}
}

func TestCalculateModuleReference(t *testing.T) {
	module := wasmtest.New().Func("init_a").Build()
	data := wasmtest.Versioned(1, module)
	src, err := VersionedModuleSourceFromBuffer(data)
	if err != nil {
		t.Fatal(err)
	}

	ref := CalculateModuleReference(src)
	if ref != ModuleReference(sha256.Sum256(data)) {
		t.Error("reference should hash the versioned bytes")
	}
	s := ref.String()
	if len(s) != 64 || strings.ToLower(s) != s {
		t.Errorf("unexpected hex form %q", s)
	}

	parsed, err := ParseModuleReference(s)
	if err != nil {
		t.Fatalf("ParseModuleReference: %v", err)
	}
	if parsed != ref {
		t.Error("parsed reference differs")
	}
	if _, err := ParseModuleReference("abcd"); err == nil {
		t.Error("expected error for short reference")
	}
	if _, err := ParseModuleReference(strings.Repeat("zz", 32)); err == nil {
		t.Error("expected error for non-hex reference")
	}
}

func TestNames(t *testing.T) {
	tests := []struct {
		name    string
		init    bool
		receive bool
	}{
		{"init_token", true, false},
		{"init_", true, false},
		{"init_a.b", false, true},
		{"token.transfer", false, true},
		{"token.a.b", false, true},
		{"token", false, false},
		{"init_tok\x01en", false, false},
		{"token.é", false, false},
		{"token.with space", false, true},
		{"init_" + strings.Repeat("a", 95), true, false},
		{"init_" + strings.Repeat("a", 96), false, false},
	}
	for _, tt := range tests {
		if got := IsInitName(tt.name); got != tt.init {
			t.Errorf("IsInitName(%q) = %v, want %v", tt.name, got, tt.init)
		}
		if got := IsReceiveName(tt.name); got != tt.receive {
			t.Errorf("IsReceiveName(%q) = %v, want %v", tt.name, got, tt.receive)
		}
	}
}

func TestParseModuleInterface(t *testing.T) {
	module := wasmtest.New().
		Func("init_token", "token.transfer", "helper", "orphan.view", "token.balanceOf", "init_second").
		Memory("memory").
		Build()
	src := &VersionedModuleSource{Version: 1, Source: module}

	for _, validate := range []bool{false, true} {
		iface, err := ParseModuleInterface(context.Background(), src, validate)
		if err != nil {
			t.Fatalf("validate=%v: %v", validate, err)
		}
		if len(iface) != 3 {
			t.Fatalf("expected 3 contracts, got %d", len(iface))
		}
		names := []string{iface[0].Name, iface[1].Name, iface[2].Name}
		if strings.Join(names, ",") != "token,orphan,second" {
			t.Errorf("unexpected contract order %v", names)
		}
		if got := strings.Join(iface.Contract("token").Entrypoints, ","); got != "transfer,balanceOf" {
			t.Errorf("unexpected token entrypoints %q", got)
		}
		if got := strings.Join(iface.Contract("orphan").Entrypoints, ","); got != "view" {
			t.Errorf("unexpected orphan entrypoints %q", got)
		}
		if len(iface.Contract("second").Entrypoints) != 0 {
			t.Error("second should have no entrypoints")
		}
		if iface.Contract("missing") != nil {
			t.Error("unexpected contract")
		}
		if iface.EntrypointCount() != 3 {
			t.Errorf("expected 3 entrypoints, got %d", iface.EntrypointCount())
		}
	}
}

func TestParseModuleInterface_DuplicateEntrypoint(t *testing.T) {
	module := wasmtest.New().Func("init_a", "a.x", "a.x").Build()
	iface, err := ParseModuleInterface(context.Background(), &VersionedModuleSource{Source: module}, false)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(iface.Contract("a").Entrypoints); got != 1 {
		t.Errorf("expected entrypoints to be a set, got %d", got)
	}
}

func TestParseModuleInterface_Validation(t *testing.T) {
	// A function declared without a body passes the section walk but not
	// compilation.
	module := wasmtest.New().Func("init_a").Build()
	codeless := module[:len(module)-6]

	if _, err := ParseModuleInterface(context.Background(), &VersionedModuleSource{Source: codeless}, false); err != nil {
		t.Fatalf("section walk should accept: %v", err)
	}
	_, err := ParseModuleInterface(context.Background(), &VersionedModuleSource{Source: codeless}, true)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, cgerrors.ParseFailed("", nil)) {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestGetEmbeddedModuleSchema(t *testing.T) {
	tests := []struct {
		name      string
		builder   *wasmtest.Builder
		want      string
		versioned bool
		version   uint8
	}{
		{
			name: "versioned preferred",
			builder: wasmtest.New().
				Custom(SchemaSectionV1, []byte("v1")).
				TrailingCustom(SchemaSectionVersioned, []byte("vv")),
			want:      "vv",
			versioned: true,
		},
		{
			name:    "v1 is unversioned 0",
			builder: wasmtest.New().Custom(SchemaSectionV1, []byte("v1")).Custom(SchemaSectionV2, []byte("v2")),
			want:    "v1",
		},
		{
			name:    "v2 is unversioned 1",
			builder: wasmtest.New().Func("init_a").TrailingCustom(SchemaSectionV2, []byte("v2")),
			want:    "v2",
			version: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := GetEmbeddedModuleSchema(&VersionedModuleSource{Source: tt.builder.Build()})
			if err != nil {
				t.Fatal(err)
			}
			if raw == nil {
				t.Fatal("expected schema")
			}
			if string(raw.Buffer) != tt.want || raw.Versioned != tt.versioned || raw.Version != tt.version {
				t.Errorf("got %+v", raw)
			}
		})
	}
}

func TestGetEmbeddedModuleSchema_Absent(t *testing.T) {
	raw, err := GetEmbeddedModuleSchema(&VersionedModuleSource{Source: wasmtest.New().Custom("name", nil).Build()})
	if err != nil {
		t.Fatal(err)
	}
	if raw != nil {
		t.Errorf("expected no schema, got %+v", raw)
	}
}

func TestGetEmbeddedModuleSchema_Duplicate(t *testing.T) {
	module := wasmtest.New().
		Custom(SchemaSectionVersioned, []byte{1}).
		TrailingCustom(SchemaSectionVersioned, []byte{2}).
		Build()
	_, err := GetEmbeddedModuleSchema(&VersionedModuleSource{Source: module})
	if err == nil || !strings.Contains(err.Error(), "invalid wasm module") {
		t.Errorf("expected duplicate section error, got %v", err)
	}
}

func TestSource(t *testing.T) {
	module := wasmtest.New().
		Func("init_a", "a.x").
		TrailingCustom(SchemaSectionV2, []byte{0}).
		Build()
	src := &VersionedModuleSource{Version: 1, Source: module}
	s := NewSource(src, true)
	ctx := context.Background()

	iface, err := s.ModuleInterface(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(iface) != 1 || iface[0].Name != "a" {
		t.Errorf("unexpected interface %+v", iface)
	}
	ref, err := s.ModuleReference(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if ref != CalculateModuleReference(src) {
		t.Error("reference mismatch")
	}
	raw, err := s.EmbeddedSchema(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if raw == nil || raw.Version != 1 {
		t.Errorf("unexpected schema %+v", raw)
	}
	if s.Versioned() != src {
		t.Error("Versioned should return the wrapped source")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := s.ModuleInterface(cancelled); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context error, got %v", err)
	}
}
