package btree

import (
	"fmt"
	"io"
	"strings"
)

// Dot writes the internal structure of the tree in Graphviz DOT format
// (for debugging purposes). Leaves list their chunk metrics, internal nodes
// show their subtree total and starting byte offset.
func (t *Tree) Dot(w io.Writer) error {
	ids := make(map[treeNode]int)
	id := func(n treeNode) int {
		if i, ok := ids[n]; ok {
			return i
		}
		ids[n] = len(ids) + 1
		return ids[n]
	}
	var nodes, edges strings.Builder
	t.eachNode(func(n treeNode, depth, pos int) {
		ID := id(n)
		switch n := n.(type) {
		case *leafNode:
			parts := make([]string, len(n.chunks))
			for i, c := range n.chunks {
				parts[i] = fmt.Sprintf("%d/%d", c.Bytes, c.Chars)
			}
			label := fmt.Sprintf("@%d\\n%s", pos, strings.Join(parts, " "))
			fmt.Fprintf(&nodes, "\"%d\" [label=\"%s\" %s];\n", ID, label, nodeDotStyles(true, depth))
		case *innerNode:
			total := n.total()
			label := fmt.Sprintf("%d/%d\\n@%d", total.Bytes, total.Chars, pos)
			fmt.Fprintf(&nodes, "\"%d\" [label=\"%s\" %s];\n", ID, label, nodeDotStyles(false, depth))
			for _, child := range n.children {
				fmt.Fprintf(&edges, "\"%d\" -> \"%d\";\n", ID, id(child))
			}
		}
	})
	var err error
	write := func(s string) {
		if err == nil {
			_, err = io.WriteString(w, s)
		}
	}
	write("strict digraph {\n")
	write("\tnode [fontname=Arial,fontsize=12];\n")
	write(nodes.String())
	write(edges.String())
	write("}\n")
	return err
}

func nodeDotStyles(isleaf bool, depth int) string {
	s := ",style=filled"
	if isleaf {
		s += ",shape=box"
	} else {
		s += ",color=black,shape=ellipse"
	}
	return s + fmt.Sprintf(",fillcolor=\"%s\"", hexcolors[depth%len(hexcolors)])
}

var hexcolors = [...]string{"white", "#CCDDFF", "#AACCFF", "#88BBFF", "#66AAFF",
	"#4499FF", "#2288FF", "#0077FF", "#0066FF"}
