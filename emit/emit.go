// Package emit renders generated declarations to files: TypeScript sources,
// JavaScript compiled from them with esbuild, and .d.ts declarations.
package emit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/evanw/esbuild/pkg/api"
	"go.uber.org/zap"

	cgerrors "github.com/wippyai/contractgen/errors"
	"github.com/wippyai/contractgen/ts"
)

// OutputType selects which files are produced.
type OutputType string

const (
	// TypeScript produces only .ts sources.
	TypeScript OutputType = "TypeScript"
	// JavaScript produces only .js modules.
	JavaScript OutputType = "JavaScript"
	// TypedJavaScript produces .js modules and .d.ts declarations.
	TypedJavaScript OutputType = "TypedJavaScript"
	// Everything produces all of the above.
	Everything OutputType = "Everything"
)

// OutputTypes lists the accepted output types.
var OutputTypes = []OutputType{TypeScript, JavaScript, TypedJavaScript, Everything}

// ParseOutputType validates s as an output type.
func ParseOutputType(s string) (OutputType, error) {
	for _, o := range OutputTypes {
		if string(o) == s {
			return o, nil
		}
	}
	return "", cgerrors.InvalidInput(cgerrors.PhaseConfig,
		fmt.Sprintf("invalid output type %q: use TypeScript, JavaScript, TypedJavaScript or Everything", s))
}

func (o OutputType) typeScript() bool {
	return o == TypeScript || o == Everything
}

func (o OutputType) javaScript() bool {
	return o == JavaScript || o == TypedJavaScript || o == Everything
}

func (o OutputType) declarations() bool {
	return o == TypedJavaScript || o == Everything
}

// File kinds, also used as file extensions.
const (
	KindTS  = "ts"
	KindJS  = "js"
	KindDTS = "d.ts"
)

// tsNocheckHeader disables type checking of a generated file.
const tsNocheckHeader = "// @ts-nocheck"

// Options configures rendering.
type Options struct {
	// OnFile is called after each file is written.
	OnFile    func(kind, path string)
	OutDir    string
	Output    OutputType
	TSNocheck bool
}

// Artifact is one rendered file.
type Artifact struct {
	Kind    string
	Name    string
	Content []byte
}

// FileName returns Name with the extension of Kind.
func (a Artifact) FileName() string {
	return a.Name + "." + a.Kind
}

// Render produces the artifacts of files for the requested output type. An
// empty output type means Everything.
func Render(files []*ts.File, output OutputType, tsNocheck bool) ([]Artifact, error) {
	if output == "" {
		output = Everything
	}
	var out []Artifact
	for _, f := range files {
		if tsNocheck {
			f = withHeader(f, tsNocheckHeader)
		}
		source := ts.Print(f, ts.TypeScript)
		if output.typeScript() {
			out = append(out, Artifact{Kind: KindTS, Name: f.Name, Content: []byte(source)})
		}
		if output.javaScript() {
			js, err := transpile(f.Name, source)
			if err != nil {
				return nil, err
			}
			out = append(out, Artifact{Kind: KindJS, Name: f.Name, Content: js})
		}
		if output.declarations() {
			out = append(out, Artifact{Kind: KindDTS, Name: f.Name, Content: []byte(ts.Print(f, ts.Declarations))})
		}
	}
	return out, nil
}

// Write renders files and writes them to opts.OutDir, creating it if needed.
// It returns the written paths.
func Write(files []*ts.File, opts Options) ([]string, error) {
	artifacts, err := Render(files, opts.Output, opts.TSNocheck)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, cgerrors.IO(cgerrors.PhaseEmit, opts.OutDir, err)
	}

	paths := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		path := filepath.Join(opts.OutDir, a.FileName())
		if err := os.WriteFile(path, a.Content, 0o644); err != nil {
			return nil, cgerrors.IO(cgerrors.PhaseEmit, path, err)
		}
		Logger().Debug("wrote file", zap.String("path", path), zap.Int("bytes", len(a.Content)))
		if opts.OnFile != nil {
			opts.OnFile(a.Kind, path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func withHeader(f *ts.File, line string) *ts.File {
	c := *f
	c.Header = append([]string{line}, f.Header...)
	return &c
}

// transpile strips the types of a TypeScript source.
func transpile(name, source string) ([]byte, error) {
	result := api.Transform(source, api.TransformOptions{
		Loader:     api.LoaderTS,
		Format:     api.FormatESModule,
		Target:     api.ES2020,
		Sourcefile: name + "." + KindTS,
	})
	if len(result.Errors) > 0 {
		msg := result.Errors[0]
		detail := msg.Text
		if msg.Location != nil {
			detail = fmt.Sprintf("%s:%d: %s", msg.Location.File, msg.Location.Line, msg.Text)
		}
		return nil, cgerrors.New(cgerrors.PhaseEmit, cgerrors.KindInvalidData).
			Path(name).
			Detail("transpile to JavaScript: %s", detail).
			Build()
	}
	for _, w := range result.Warnings {
		Logger().Warn("esbuild warning", zap.String("file", name), zap.String("text", w.Text))
	}
	return result.Code, nil
}
