package wasm

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	cgerrors "github.com/wippyai/contractgen/errors"
	"github.com/wippyai/contractgen/internal/binary"
)

// VersionedModuleSource is a smart contract module as deployed on chain.
type VersionedModuleSource struct {
	Source  []byte
	Version uint32
}

// VersionedModuleSourceFromBuffer decodes the version and length prefix of a
// .wasm.v1 style file. Bytes after the declared source length are ignored.
func VersionedModuleSourceFromBuffer(data []byte) (*VersionedModuleSource, error) {
	r := binary.FromBytes(data)
	version, err := r.ReadU32BE()
	if err != nil {
		return nil, cgerrors.ParseFailed("module version", err)
	}
	length, err := r.ReadU32BE()
	if err != nil {
		return nil, cgerrors.ParseFailed("module source length", err)
	}
	source, err := r.ReadBytes(int(length))
	if err != nil {
		return nil, cgerrors.ParseFailed("module source", err)
	}
	if version != ModuleVersion0 && version != ModuleVersion1 {
		return nil, cgerrors.Unsupported(cgerrors.PhaseParse,
			fmt.Sprintf("module version %d, the only supported versions are 0 and 1", version))
	}
	return &VersionedModuleSource{Version: version, Source: source}, nil
}

// Bytes serializes the source back into its versioned form.
func (s *VersionedModuleSource) Bytes() []byte {
	w := binary.NewWriter()
	w.WriteU32BE(s.Version)
	w.WriteU32BE(uint32(len(s.Source)))
	w.WriteBytes(s.Source)
	return w.Bytes()
}

// ModuleReference identifies a deployed module.
type ModuleReference [sha256.Size]byte

// String returns the lowercase hex form used on chain.
func (r ModuleReference) String() string {
	return hex.EncodeToString(r[:])
}

// ParseModuleReference parses a 64 character hex module reference.
func ParseModuleReference(s string) (ModuleReference, error) {
	var ref ModuleReference
	b, err := hex.DecodeString(s)
	if err != nil {
		return ref, cgerrors.ParseFailed("module reference", err)
	}
	if len(b) != len(ref) {
		return ref, cgerrors.InvalidInput(cgerrors.PhaseParse,
			fmt.Sprintf("module reference must be %d bytes, got %d", len(ref), len(b)))
	}
	copy(ref[:], b)
	return ref, nil
}

// CalculateModuleReference hashes the version and length prefix together with
// the source, matching the reference the chain assigns on deployment.
func CalculateModuleReference(src *VersionedModuleSource) ModuleReference {
	w := binary.NewWriter()
	w.WriteU32BE(src.Version)
	w.WriteU32BE(uint32(len(src.Source)))

	h := sha256.New()
	h.Write(w.Bytes())
	h.Write(src.Source)

	var ref ModuleReference
	copy(ref[:], h.Sum(nil))
	return ref
}
