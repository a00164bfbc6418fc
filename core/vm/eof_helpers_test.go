package vm

import "encoding/binary"

// buildEOF assembles a well-formed EOF1 container from its parts, the way
// buildEOF in go-ethereum's own eof_test.go assembles one for the newer
// container-section grammar. types must have the same length as codes.
func buildEOF(types []TypeEntry, codes [][]byte, data []byte) []byte {
	var buf []byte
	buf = append(buf, Magic0, Magic1, Version1)

	buf = append(buf, KindType)
	buf = append(buf, be16Bytes(uint16(len(types)*TypeEntrySize))...)

	buf = append(buf, KindCode)
	buf = append(buf, be16Bytes(uint16(len(codes)))...)
	for _, c := range codes {
		buf = append(buf, be16Bytes(uint16(len(c)))...)
	}

	buf = append(buf, KindData)
	buf = append(buf, be16Bytes(uint16(len(data)))...)

	buf = append(buf, Terminator)

	for _, t := range types {
		buf = append(buf, t.Inputs, t.Outputs)
		buf = append(buf, be16Bytes(t.MaxStack)...)
	}
	for _, c := range codes {
		buf = append(buf, c...)
	}
	buf = append(buf, data...)

	return buf
}

func be16Bytes(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

// minimalEOF returns a minimal valid EOF1 container: one type entry, one
// code section containing only STOP, no data.
func minimalEOF() []byte {
	return buildEOF(
		[]TypeEntry{{Inputs: 0, Outputs: 0, MaxStack: 0}},
		[][]byte{{byte(STOP)}},
		nil,
	)
}

// rjump16 encodes a signed relative-jump offset the way RJUMP/RJUMPI/the
// RJUMPV table entries carry it: big-endian two's complement.
func rjump16(offset int16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, uint16(offset))
	return b
}
