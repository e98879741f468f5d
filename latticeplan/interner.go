package latticeplan

import (
	"strconv"
	"strings"
)

// StateEntry is one hash-consed lattice state. Coord is the quantized joint-coordinate
// identity key; Angles is the representative continuous angle vector that produced it (any
// other angle vector that quantizes to the same Coord is folded onto this one); XYZ is the
// end-effector's workspace voxel at Angles; LastPrimitiveApplied records which primitive
// produced this entry, for diagnostics only — the search never relies on it.
type StateEntry struct {
	ID                   uint32
	Coord                []int32
	Angles               []float64
	XYZ                  [3]int32
	LastPrimitiveApplied uint16
}

// StateInterner hash-conses DiscreteCoords to dense, strictly monotonic ids. All entries
// live in a single contiguous slice owned by the interner; the coord-keyed index stores ids,
// not pointers, so the slice is free to grow without invalidating the index. A *StateEntry
// obtained before a later Intern call may point into the pre-growth copy of the slice; since
// entries are never modified after creation, it still reads the same values.
type StateInterner struct {
	entries []StateEntry
	byCoord map[string]uint32
}

// NewStateInterner returns an empty interner.
func NewStateInterner() *StateInterner {
	return &StateInterner{byCoord: make(map[string]uint32)}
}

func coordKey(coord []int32) string {
	var b strings.Builder
	for i, c := range coord {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(int64(c), 10))
	}
	return b.String()
}

// Intern returns the existing entry for coord if one exists; otherwise it allocates a new
// entry with a fresh id equal to the current table size, appends it, and records the
// coord->id mapping. The returned bool is true iff a new entry was allocated.
func (si *StateInterner) Intern(coord []int32, angles []float64, xyz [3]int32, lastPrim uint16) (*StateEntry, bool) {
	key := coordKey(coord)
	if id, ok := si.byCoord[key]; ok {
		return &si.entries[id], false
	}

	id := uint32(len(si.entries))
	si.entries = append(si.entries, StateEntry{
		ID:                   id,
		Coord:                append([]int32(nil), coord...),
		Angles:               append([]float64(nil), angles...),
		XYZ:                  xyz,
		LastPrimitiveApplied: lastPrim,
	})
	si.byCoord[key] = id
	return &si.entries[id], true
}

// InternDistinct always allocates a fresh entry, even if coord collides with an existing
// one's, and does not register it in byCoord. This is how Setup interns the goal: the goal
// is a distinct id from any reachable lattice point that happens to share its coord, for
// absorbing-goal semantics by id identity rather than by coord equality.
func (si *StateInterner) InternDistinct(coord []int32, angles []float64, xyz [3]int32) *StateEntry {
	id := uint32(len(si.entries))
	si.entries = append(si.entries, StateEntry{
		ID:     id,
		Coord:  append([]int32(nil), coord...),
		Angles: append([]float64(nil), angles...),
		XYZ:    xyz,
	})
	return &si.entries[id]
}

// LookupByID returns the entry for id, or nil if id is out of range.
func (si *StateInterner) LookupByID(id uint32) *StateEntry {
	if int(id) >= len(si.entries) {
		return nil
	}
	return &si.entries[id]
}

// Count returns the number of interned states.
func (si *StateInterner) Count() int {
	return len(si.entries)
}

// ConvertIDsToAngles resolves an id sequence to its representative angle vectors. It fails
// with an InvariantError if any id is out of range, rather than silently returning a
// truncated or zero-valued result.
func (si *StateInterner) ConvertIDsToAngles(ids []uint32) ([][]float64, error) {
	out := make([][]float64, 0, len(ids))
	for _, id := range ids {
		entry := si.LookupByID(id)
		if entry == nil {
			return nil, NewIDOutOfRangeError(id, len(si.entries))
		}
		out = append(out, append([]float64(nil), entry.Angles...))
	}
	return out, nil
}
