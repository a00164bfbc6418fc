package vm

// parseTypeSection implements phase T: it walks the type section as an
// array of 4-byte entries and enforces the per-entry input/output/max-
// stack bounds from §4.3. There are no cross-entry constraints in this
// version — in particular the first entry is not required to carry the
// universal 0-input/non-returning signature some EOF drafts mandate; see
// DESIGN.md for that Open Question's resolution.
func parseTypeSection(code []byte, h *Header) ([]TypeEntry, *ValidationError) {
	base := h.Length
	n := int(h.NumCodeSections)
	if base+n*TypeEntrySize > len(code) {
		return nil, fail(ErrTruncatedHeader, base)
	}

	entries := make([]TypeEntry, n)
	for i := 0; i < n; i++ {
		j := base + i*TypeEntrySize
		inputs := code[j]
		outputs := code[j+1]
		maxStack := be16(code, j+2)

		if inputs > 0x7F {
			return nil, fail(ErrBadTypeEntry, j)
		}
		if outputs > 0x7F {
			return nil, fail(ErrBadTypeEntry, j+1)
		}
		if maxStack > MaxStackHeight {
			return nil, fail(ErrBadTypeEntry, j+2)
		}

		entries[i] = TypeEntry{Inputs: inputs, Outputs: outputs, MaxStack: maxStack}
	}
	return entries, nil
}
