// Package ts models TypeScript source files as declarations and prints them
// as TypeScript or as declaration (.d.ts) files.
package ts

// File is one generated source unit.
type File struct {
	// Name is the file name without extension.
	Name    string
	Header  []string
	Imports []Import
	Decls   []Decl
}

// Decl is a top-level declaration.
type Decl interface {
	decl()
}

// Import is a namespace import: import * as Namespace from 'From'.
type Import struct {
	Namespace string
	From      string
}

// Const declares a constant.
type Const struct {
	Docs     []string
	Name     string
	Type     string
	Value    string
	Exported bool
}

// TypeAlias declares a type.
type TypeAlias struct {
	Docs     []string
	Name     string
	Type     string
	Exported bool
}

// Class declares a class with properties and a constructor.
type Class struct {
	Ctor     *Constructor
	Docs     []string
	Name     string
	Props    []Property
	Exported bool
}

// Property is a class property.
type Property struct {
	Docs []string
	// Modifiers such as "private" or "public readonly".
	Modifiers string
	Name      string
	Type      string
	Init      string
}

// Constructor is a class constructor.
type Constructor struct {
	Docs   []string
	Params []Param
	Body   []string
}

// Func declares a function.
type Func struct {
	Docs       []string
	Name       string
	Params     []Param
	Returns    string
	ReturnsDoc string
	Body       []string
	Exported   bool
	Async      bool
}

// Param is a function parameter. A parameter with a Default is optional at
// call sites.
type Param struct {
	Name     string
	Type     string
	Default  string
	Doc      string
	Optional bool
}

func (*Const) decl()     {}
func (*TypeAlias) decl() {}
func (*Class) decl()     {}
func (*Func) decl()      {}
