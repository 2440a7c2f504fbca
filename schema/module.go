package schema

import (
	"bytes"
	"fmt"

	cgerrors "github.com/wippyai/contractgen/errors"
	"github.com/wippyai/contractgen/internal/binary"
)

// versionedPrefix starts every schema that carries its own version byte.
var versionedPrefix = []byte{0xff, 0xff}

// Highest module schema version understood by the parser.
const MaxVersion = 3

// RawModuleSchema is an undecoded module schema. Unversioned schemas predate
// the version prefix and carry their version (0 or 1) out of band.
type RawModuleSchema struct {
	Buffer    []byte
	Versioned bool
	Version   uint8
}

// Module is a decoded module schema.
type Module struct {
	Contracts []*Contract
	Version   uint8
}

// Contract holds the schemas of one contract, entrypoints in declaration order.
type Contract struct {
	State   Type // version 0 only
	Init    *Function
	Event   Type // version 3 only
	Name    string
	Receive []*Entrypoint
}

// Entrypoint is a named receive function.
type Entrypoint struct {
	Function *Function
	Name     string
}

// Function holds the optional schemas of an init or receive function.
type Function struct {
	Parameter   Type
	ReturnValue Type
	Error       Type // version 2 and later
}

// Contract returns the contract with the given name, or nil.
func (m *Module) Contract(name string) *Contract {
	for _, c := range m.Contracts {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Entrypoint returns the function schema of the named entrypoint, or nil.
func (c *Contract) Entrypoint(name string) *Function {
	for _, ep := range c.Receive {
		if ep.Name == name {
			return ep.Function
		}
	}
	return nil
}

// ParseRawModuleSchema decodes a module schema.
func ParseRawModuleSchema(raw RawModuleSchema) (*Module, error) {
	d := newDecoder(raw.Buffer)
	version := raw.Version
	if raw.Versioned {
		prefix, err := d.r.ReadBytes(len(versionedPrefix))
		if err != nil || !bytes.Equal(prefix, versionedPrefix) {
			return nil, cgerrors.InvalidData(cgerrors.PhaseParse, nil, "missing versioned schema prefix")
		}
		if version, err = d.u8("schema version"); err != nil {
			return nil, err
		}
		if version > MaxVersion {
			return nil, cgerrors.Unsupported(cgerrors.PhaseParse, fmt.Sprintf("module schema version %d", version))
		}
	} else if version > 1 {
		return nil, cgerrors.Unsupported(cgerrors.PhaseParse, fmt.Sprintf("unversioned module schema version %d", version))
	}

	n, err := d.count("contract count")
	if err != nil {
		return nil, err
	}
	mod := &Module{Version: version, Contracts: make([]*Contract, 0, n)}
	d.push("contracts")
	for i := 0; i < n; i++ {
		c, err := d.contract(version)
		if err != nil {
			return nil, err
		}
		mod.Contracts = append(mod.Contracts, c)
	}
	d.pop()
	return mod, nil
}

func (d *decoder) contract(version uint8) (*Contract, error) {
	name, err := d.str("contract name")
	if err != nil {
		return nil, err
	}
	d.push(name)
	defer d.pop()

	c := &Contract{Name: name}
	if version == 0 {
		if c.State, err = d.optionalType("state"); err != nil {
			return nil, err
		}
	}

	present, err := d.option("init")
	if err != nil {
		return nil, err
	}
	if present {
		d.push("init")
		c.Init, err = d.function(version)
		d.pop()
		if err != nil {
			return nil, err
		}
	}

	n, err := d.count("entrypoint count")
	if err != nil {
		return nil, err
	}
	c.Receive = make([]*Entrypoint, 0, n)
	for i := 0; i < n; i++ {
		epName, err := d.str("entrypoint name")
		if err != nil {
			return nil, err
		}
		d.push(epName)
		fn, err := d.function(version)
		d.pop()
		if err != nil {
			return nil, err
		}
		c.Receive = append(c.Receive, &Entrypoint{Name: epName, Function: fn})
	}

	if version == 3 {
		if c.Event, err = d.optionalType("event"); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (d *decoder) option(what string) (bool, error) {
	tag, err := d.u8(what + " option tag")
	if err != nil {
		return false, err
	}
	switch tag {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, cgerrors.InvalidTag(cgerrors.PhaseParse, append([]string(nil), d.path...), what+" option", tag)
}

func (d *decoder) optionalType(what string) (Type, error) {
	present, err := d.option(what)
	if err != nil || !present {
		return nil, err
	}
	d.push(what)
	defer d.pop()
	return d.typ()
}

func (d *decoder) function(version uint8) (*Function, error) {
	idx, err := d.u8("function schema index")
	if err != nil {
		return nil, err
	}
	var hasParam, hasReturn, hasError bool
	if version < 2 {
		// Unknown indices carry no schemas.
		hasParam = idx == 0 || idx == 2
		hasReturn = idx == 1 || idx == 2
	} else {
		if idx > 7 {
			return nil, cgerrors.InvalidTag(cgerrors.PhaseParse, append([]string(nil), d.path...), "function schema", idx)
		}
		hasParam = idx == 0 || idx == 2 || idx == 4 || idx == 6
		hasReturn = idx == 1 || idx == 2 || idx == 5 || idx == 6
		hasError = idx >= 3 && idx <= 6
	}

	fn := &Function{}
	read := func(flag bool, seg string, dst *Type) error {
		if !flag {
			return nil
		}
		d.push(seg)
		defer d.pop()
		t, err := d.typ()
		*dst = t
		return err
	}
	if err := read(hasParam, "parameter", &fn.Parameter); err != nil {
		return nil, err
	}
	if err := read(hasReturn, "returnValue", &fn.ReturnValue); err != nil {
		return nil, err
	}
	if err := read(hasError, "error", &fn.Error); err != nil {
		return nil, err
	}
	return fn, nil
}

// Serialize encodes the module schema in its versioned form.
func (m *Module) Serialize() ([]byte, error) {
	if m.Version > MaxVersion {
		return nil, cgerrors.Unsupported(cgerrors.PhaseParse, fmt.Sprintf("module schema version %d", m.Version))
	}
	w := binary.NewWriter()
	w.WriteBytes(versionedPrefix)
	w.Byte(m.Version)
	if err := m.writeBody(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func (m *Module) writeBody(w *binary.Writer) error {
	w.WriteU32LE(uint32(len(m.Contracts)))
	for _, c := range m.Contracts {
		w.WriteStringLE(c.Name)
		if m.Version == 0 {
			writeOptionalType(w, c.State)
		}
		if c.Init == nil {
			w.Byte(0)
		} else {
			w.Byte(1)
			if err := writeFunction(w, m.Version, c.Init); err != nil {
				return fmt.Errorf("contract %s init: %w", c.Name, err)
			}
		}
		w.WriteU32LE(uint32(len(c.Receive)))
		for _, ep := range c.Receive {
			w.WriteStringLE(ep.Name)
			if err := writeFunction(w, m.Version, ep.Function); err != nil {
				return fmt.Errorf("contract %s entrypoint %s: %w", c.Name, ep.Name, err)
			}
		}
		if m.Version == 3 {
			writeOptionalType(w, c.Event)
		}
	}
	return nil
}

func writeOptionalType(w *binary.Writer, t Type) {
	if t == nil {
		w.Byte(0)
		return
	}
	w.Byte(1)
	writeType(w, t)
}

func writeFunction(w *binary.Writer, version uint8, fn *Function) error {
	if fn == nil {
		fn = &Function{}
	}
	p, r, e := fn.Parameter != nil, fn.ReturnValue != nil, fn.Error != nil
	var idx byte
	if version < 2 {
		switch {
		case e:
			return cgerrors.Unsupported(cgerrors.PhaseParse, "error schema before version 2")
		case p && r:
			idx = 2
		case p:
			idx = 0
		case r:
			idx = 1
		default:
			return cgerrors.Unsupported(cgerrors.PhaseParse, "empty function schema before version 2")
		}
	} else {
		switch {
		case p && r && e:
			idx = 6
		case r && e:
			idx = 5
		case p && e:
			idx = 4
		case e:
			idx = 3
		case p && r:
			idx = 2
		case r:
			idx = 1
		case p:
			idx = 0
		default:
			idx = 7
		}
	}
	w.Byte(idx)
	for _, t := range []Type{fn.Parameter, fn.ReturnValue, fn.Error} {
		if t != nil {
			writeType(w, t)
		}
	}
	return nil
}
