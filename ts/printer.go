package ts

import (
	"fmt"
	"strings"
)

// Mode selects the printer output.
type Mode int

const (
	// TypeScript prints complete source.
	TypeScript Mode = iota
	// Declarations prints a .d.ts file: signatures without bodies.
	Declarations
)

// Print renders f in the given mode.
func Print(f *File, mode Mode) string {
	e := NewEmitter()
	for _, h := range f.Header {
		e.Line(h)
	}
	if len(f.Header) > 0 {
		e.Blank()
	}
	for _, imp := range f.Imports {
		e.Linef("import * as %s from '%s';", imp.Namespace, imp.From)
	}

	for _, d := range f.Decls {
		if mode == Declarations && !visibleInDeclarations(d) {
			continue
		}
		e.Blank()
		switch d := d.(type) {
		case *Const:
			printConst(e, d, mode)
		case *TypeAlias:
			printTypeAlias(e, d)
		case *Class:
			printClass(e, d, mode)
		case *Func:
			printFunc(e, d, mode)
		default:
			panic(fmt.Sprintf("unreachable: unknown declaration %T", d))
		}
	}
	return e.String()
}

// visibleInDeclarations drops non-exported values. Types and classes stay
// because exported signatures may refer to them.
func visibleInDeclarations(d Decl) bool {
	switch d := d.(type) {
	case *Const:
		return d.Exported
	case *Func:
		return d.Exported
	}
	return true
}

func exportPrefix(exported bool) string {
	if exported {
		return "export "
	}
	return ""
}

func printDocs(e *Emitter, docs []string, params []Param, returns, returnsDoc string) {
	var tags []string
	for _, p := range params {
		if p.Doc == "" {
			continue
		}
		name := p.Name
		if p.Default != "" {
			name = "[" + p.Name + "=" + p.Default + "]"
		} else if p.Optional {
			name = "[" + p.Name + "]"
		}
		tags = append(tags, fmt.Sprintf("@param {%s} %s - %s", p.Type, name, p.Doc))
	}
	if returnsDoc != "" {
		tags = append(tags, fmt.Sprintf("@returns {%s} %s", returns, returnsDoc))
	}
	if len(docs) == 0 && len(tags) == 0 {
		return
	}
	if len(docs) == 1 && len(tags) == 0 {
		e.Linef("/** %s */", docs[0])
		return
	}
	e.Line("/**")
	for _, d := range docs {
		e.Line(" * " + d)
	}
	if len(docs) > 0 && len(tags) > 0 {
		e.Line(" *")
	}
	for _, t := range tags {
		e.Line(" * " + t)
	}
	e.Line(" */")
}

func printConst(e *Emitter, c *Const, mode Mode) {
	printDocs(e, c.Docs, nil, "", "")
	typ := ""
	if c.Type != "" {
		typ = ": " + c.Type
	}
	if mode == Declarations {
		e.Linef("%sdeclare const %s%s;", exportPrefix(c.Exported), c.Name, typ)
		return
	}
	e.Linef("%sconst %s%s = %s;", exportPrefix(c.Exported), c.Name, typ, c.Value)
}

func printTypeAlias(e *Emitter, t *TypeAlias) {
	printDocs(e, t.Docs, nil, "", "")
	e.Linef("%stype %s = %s;", exportPrefix(t.Exported), t.Name, t.Type)
}

func paramList(params []Param, mode Mode) string {
	parts := make([]string, len(params))
	for i, p := range params {
		switch {
		case p.Default != "" && mode == TypeScript:
			parts[i] = fmt.Sprintf("%s: %s = %s", p.Name, p.Type, p.Default)
		case p.Default != "" || p.Optional:
			parts[i] = fmt.Sprintf("%s?: %s", p.Name, p.Type)
		default:
			parts[i] = fmt.Sprintf("%s: %s", p.Name, p.Type)
		}
	}
	return strings.Join(parts, ", ")
}

func printClass(e *Emitter, c *Class, mode Mode) {
	printDocs(e, c.Docs, nil, "", "")
	head := exportPrefix(c.Exported)
	if mode == Declarations {
		head += "declare "
	}
	e.Block(head + "class " + c.Name)
	for i, p := range c.Props {
		if i > 0 {
			e.Blank()
		}
		printDocs(e, p.Docs, nil, "", "")
		prefix := ""
		if p.Modifiers != "" {
			prefix = p.Modifiers + " "
		}
		switch {
		case mode == Declarations && strings.Contains(p.Modifiers, "private"):
			e.Linef("%s%s;", prefix, p.Name)
		case mode == Declarations || p.Init == "":
			e.Linef("%s%s: %s;", prefix, p.Name, p.Type)
		default:
			e.Linef("%s%s = %s;", prefix, p.Name, p.Init)
		}
	}
	if c.Ctor != nil {
		if len(c.Props) > 0 {
			e.Blank()
		}
		printDocs(e, c.Ctor.Docs, c.Ctor.Params, "", "")
		sig := "constructor(" + paramList(c.Ctor.Params, mode) + ")"
		if mode == Declarations {
			e.Line(sig + ";")
		} else {
			e.Block(sig)
			for _, s := range c.Ctor.Body {
				e.Line(s)
			}
			e.EndBlock()
		}
	}
	e.EndBlock()
}

func printFunc(e *Emitter, f *Func, mode Mode) {
	printDocs(e, f.Docs, f.Params, f.Returns, f.ReturnsDoc)
	head := exportPrefix(f.Exported)
	if mode == Declarations {
		head += "declare "
	} else if f.Async {
		head += "async "
	}
	sig := head + "function " + f.Name + "(" + paramList(f.Params, mode) + ")"
	if f.Returns != "" {
		sig += ": " + f.Returns
	}
	if mode == Declarations {
		e.Line(sig + ";")
		return
	}
	e.Block(sig)
	for _, s := range f.Body {
		e.Line(s)
	}
	e.EndBlock()
}
