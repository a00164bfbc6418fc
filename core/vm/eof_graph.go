package vm

import (
	"fmt"

	"github.com/emicklei/dot"
)

// JumpGraph renders the static jump graph of an already-validated EOF
// container as Graphviz DOT source: one subgraph per code section, one
// node per RJUMP/RJUMPI/RJUMPV instruction and per byte it targets, one
// edge per jump. It is purely advisory — nothing here feeds back into
// Validate — and exists for the CLI's --graph flag. A container that
// ValidateDetailed rejects yields that error and no graph.
func JumpGraph(code []byte, isDefined OpcodeDefinedFunc) (string, error) {
	h, err := ValidateDetailed(code, isDefined)
	if err != nil {
		return "", err
	}
	if h == nil {
		return "", fmt.Errorf("eof: JumpGraph requires an EOF container, got legacy code")
	}

	allowed := allowedOpcodes(isDefined)
	g := dot.NewGraph(dot.Directed)
	g.Attr("rankdir", "LR")

	secStart := h.Length + int(h.NumCodeSections)*TypeEntrySize
	for secIdx, size := range h.CodeSectionSizes {
		section := code[secStart : secStart+int(size)]
		scan, verr := scanSection(section, allowed)
		if verr != nil {
			return "", verr
		}

		sub := g.Subgraph(fmt.Sprintf("code%d", secIdx), dot.ClusterOption)
		nodes := make(map[int]dot.Node)
		nodeFor := func(offset int) dot.Node {
			if n, ok := nodes[offset]; ok {
				return n
			}
			n := sub.Node(fmt.Sprintf("code%d_%#04x", secIdx, offset)).
				Label(fmt.Sprintf("%#04x: %s", offset, OpCode(section[offset])))
			nodes[offset] = n
			return n
		}

		for _, e := range scan.Edges {
			sub.Edge(nodeFor(e.From), nodeFor(e.To))
		}

		secStart += int(size)
	}

	return g.String(), nil
}
