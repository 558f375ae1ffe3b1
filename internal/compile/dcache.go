package compile

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"weft/internal/gen"
	"weft/internal/types"
)

// Current schema version - increment when DescriptorPayload changes.
const cacheSchemaVersion uint16 = 1

// DiskCache persists compiled generator descriptors keyed by the source
// function's structural fingerprint, for tooling and fast reinspection.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// PayloadType is an interner-independent type description; one level of
// element nesting covers buffers of scalars, the only composite this
// core produces.
type PayloadType struct {
	Kind      uint8
	Width     uint8
	ElemKind  uint8
	ElemWidth uint8
}

type PayloadVar struct {
	Name   string
	Slot   int
	Buffer bool
	Type   PayloadType
}

// DescriptorPayload is the cached form of a gen.Descriptor.
type DescriptorPayload struct {
	Schema      uint16
	Name        string
	Fingerprint []byte
	YieldType   PayloadType
	Args        []PayloadType
	Vars        []PayloadVar
	NumYields   int
}

// OpenDiskCache initializes a descriptor cache rooted at dir.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("compile: open descriptor cache: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) path(fp [32]byte) string {
	return filepath.Join(c.dir, hex.EncodeToString(fp[:])+".desc")
}

// Store writes the descriptor under the function's fingerprint.
func (c *DiskCache) Store(fp [32]byte, d *gen.Descriptor, in *types.Interner) error {
	payload := DescriptorPayload{
		Schema:      cacheSchemaVersion,
		Name:        d.Name,
		Fingerprint: fp[:],
		YieldType:   payloadType(in, d.YieldType),
		NumYields:   d.NumYields,
	}
	for _, t := range d.Args {
		payload.Args = append(payload.Args, payloadType(in, t))
	}
	for _, v := range d.Vars {
		payload.Vars = append(payload.Vars, PayloadVar{
			Name:   v.Name,
			Slot:   v.Slot,
			Buffer: v.Buffer,
			Type:   payloadType(in, v.Type),
		})
	}

	data, err := msgpack.Marshal(&payload)
	if err != nil {
		return fmt.Errorf("compile: encode descriptor %s: %w", d.Name, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	tmp := c.path(fp) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("compile: write descriptor %s: %w", d.Name, err)
	}
	return os.Rename(tmp, c.path(fp))
}

// Load reads a cached descriptor; ok is false on a miss or a schema
// mismatch (stale entries are ignored, not errors).
func (c *DiskCache) Load(fp [32]byte) (*DescriptorPayload, bool, error) {
	c.mu.RLock()
	data, err := os.ReadFile(c.path(fp))
	c.mu.RUnlock()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("compile: read descriptor cache: %w", err)
	}

	var payload DescriptorPayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, false, fmt.Errorf("compile: decode descriptor cache: %w", err)
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false, nil
	}
	return &payload, true, nil
}

func payloadType(in *types.Interner, id types.TypeID) PayloadType {
	t, ok := in.Lookup(id)
	if !ok {
		return PayloadType{}
	}
	pt := PayloadType{Kind: uint8(t.Kind), Width: uint8(t.Width)}
	if t.Kind == types.KindBuffer {
		if elem, ok := in.Lookup(t.Elem); ok {
			pt.ElemKind = uint8(elem.Kind)
			pt.ElemWidth = uint8(elem.Width)
		}
	}
	return pt
}
