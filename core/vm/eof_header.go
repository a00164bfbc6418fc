package vm

// parseHeader implements phases M (Magic & Version) and H (Header
// Parsing) from the component design. It reads the fixed, ordered
// section-kind/size grammar, verifying the sentinel byte at each
// mandated offset before interpreting any length, and rejects on the
// first mismatch or out-of-bounds read.
//
// The caller is expected to have already checked IsEOF(code); parseHeader
// assumes the magic prefix is present and re-validates the version byte.
func parseHeader(code []byte) (*Header, *ValidationError) {
	if len(code) < minEOFLength {
		return nil, fail(ErrTruncatedHeader, 0)
	}
	if code[2] != Version1 {
		return nil, fail(ErrBadSentinel, 2)
	}

	pos := 3

	if pos >= len(code) || code[pos] != KindType {
		return nil, fail(ErrBadSentinel, pos)
	}
	pos++
	if pos+2 > len(code) {
		return nil, fail(ErrTruncatedHeader, pos)
	}
	typeSize := be16(code, pos)
	pos += 2
	if typeSize == 0 || typeSize%TypeEntrySize != 0 {
		return nil, fail(ErrBadSectionCount, pos)
	}

	if pos >= len(code) || code[pos] != KindCode {
		return nil, fail(ErrBadSentinel, pos)
	}
	pos++
	if pos+2 > len(code) {
		return nil, fail(ErrTruncatedHeader, pos)
	}
	numCode := be16(code, pos)
	pos += 2
	if numCode == 0 || numCode > MaxCodeSections {
		return nil, fail(ErrBadSectionCount, pos)
	}
	if int(typeSize)/TypeEntrySize != int(numCode) {
		return nil, fail(ErrBadSectionCount, pos)
	}

	codeSizes := make([]uint16, numCode)
	for i := range codeSizes {
		if pos+2 > len(code) {
			return nil, fail(ErrTruncatedHeader, pos)
		}
		codeSizes[i] = be16(code, pos)
		pos += 2
	}

	if pos >= len(code) || code[pos] != KindData {
		return nil, fail(ErrBadSentinel, pos)
	}
	pos++
	if pos+2 > len(code) {
		return nil, fail(ErrTruncatedHeader, pos)
	}
	dataSize := be16(code, pos)
	pos += 2

	if pos >= len(code) || code[pos] != Terminator {
		return nil, fail(ErrBadSentinel, pos)
	}
	pos++

	return &Header{
		Version:          Version1,
		TypeSectionSize:  typeSize,
		NumCodeSections:  numCode,
		CodeSectionSizes: codeSizes,
		DataSectionSize:  dataSize,
		Length:           pos,
	}, nil
}
