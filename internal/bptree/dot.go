package bptree

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Print writes a human-readable per-page summary to w: one block per page,
// listing page id, parent id (or "None"), next-leaf id (or "None"), and
// the keys and child/value pairs on that page.
func (t *Tree) Print(w io.Writer) {
	if t.root == nil {
		fmt.Fprintln(w, "tree is empty")
		return
	}
	t.printPage(w, t.root)
}

func (t *Tree) printPage(w io.Writer, p *page) {
	parentID, nextID := "None", "None"
	if p.parent != nil {
		parentID = fmt.Sprintf("%d", p.parent.id)
	}
	if p.nextLeaf != nil {
		nextID = fmt.Sprintf("%d", p.nextLeaf.id)
	}

	if p.isLeaf() {
		fmt.Fprintf(w, "Leaf Page: %d Parent: %s Next: %s\n", p.id, parentID, nextID)
		for i := 0; i < p.size(); i++ {
			fmt.Fprintf(w, "%d, ", p.keyAt(i))
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "Internal Page: %d Parent: %s Next: %s\n", p.id, parentID, nextID)
	for i := 0; i < p.size(); i++ {
		fmt.Fprintf(w, "%d : %d, ", p.keyAt(i), p.childAt(i).id)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	for i := 0; i < p.size(); i++ {
		t.printPage(w, p.childAt(i))
	}
}

// Draw writes a Graphviz dot representation of the tree to w. When
// drawToFile is true it additionally writes the same representation to
// tree.dot in the current working directory. The reference tool this is
// grounded on always wrote that file unconditionally, which makes Draw
// unsafe to call from a test or an embedding library against an
// unwritable or shared working directory, so the file write here is
// opt-in.
func (t *Tree) Draw(w io.Writer, drawToFile bool) error {
	var body string
	if t.root != nil {
		body = t.toGraph(t.root)
	}
	graph := fmt.Sprintf("digraph G {%s}", body)

	if _, err := fmt.Fprintln(w, graph); err != nil {
		return err
	}
	if !drawToFile {
		return nil
	}
	return os.WriteFile("tree.dot", []byte(graph), 0o644)
}

func (t *Tree) toGraph(p *page) string {
	var b strings.Builder

	if p.isLeaf() {
		fmt.Fprintf(&b, "LEAF_%d", p.id)
		b.WriteString("[shape=plain color=green ")
		b.WriteString("label=<<TABLE BORDER=\"0\" CELLBORDER=\"1\" CELLSPACING=\"0\" CELLPADDING=\"4\">\n")
		fmt.Fprintf(&b, "<TR><TD COLSPAN=\"%d\">P=%d</TD></TR>\n", p.size(), p.id)
		fmt.Fprintf(&b, "<TR><TD COLSPAN=\"%d\">max_size=%d,min_size=%d</TD></TR>\n<TR>", p.size(), p.maxSize, p.minSize())
		for i := 0; i < p.size(); i++ {
			fmt.Fprintf(&b, "<TD>%d</TD>\n", p.keyAt(i))
		}
		b.WriteString("</TR>")
		b.WriteString("</TABLE>>];\n")

		if p.nextLeaf != nil {
			fmt.Fprintf(&b, "LEAF_%d -> LEAF_%d;\n{rank=same LEAF_%d LEAF_%d};\n", p.id, p.nextLeaf.id, p.id, p.nextLeaf.id)
		}
		if p.parent != nil {
			fmt.Fprintf(&b, "INT_%d:p%d -> LEAF_%d;\n", p.parent.id, p.id, p.id)
		}
		return b.String()
	}

	fmt.Fprintf(&b, "INT_%d[shape=plain color=pink label=<<TABLE BORDER=\"0\" CELLBORDER=\"1\" CELLSPACING=\"0\" CELLPADDING=\"4\">\n", p.id)
	fmt.Fprintf(&b, "<TR><TD COLSPAN=\"%d\">P=\"%d\"</TD></TR>\n", p.size(), p.id)
	fmt.Fprintf(&b, "<TR><TD COLSPAN=\"%d\">max_size=%d,min_size=%d</TD></TR>\n<TR>", p.size(), p.maxSize, p.minSize())

	for i := 0; i < p.size(); i++ {
		fmt.Fprintf(&b, "<TD PORT=\"p%d\">", p.childAt(i).id)
		if i > 0 {
			fmt.Fprintf(&b, "%d", p.keyAt(i))
		} else {
			b.WriteString(" ")
		}
		b.WriteString("</TD>\n")
	}
	b.WriteString("</TR></TABLE>>];\n")

	if p.parent != nil {
		fmt.Fprintf(&b, "INT_%d:p%d -> INT_%d;\n", p.parent.id, p.id, p.id)
	}

	for i := 0; i < p.size(); i++ {
		child := p.childAt(i)
		b.WriteString(t.toGraph(child))

		if i > 0 {
			prev := p.childAt(i - 1)
			if !prev.isLeaf() && !child.isLeaf() {
				fmt.Fprintf(&b, "{rank=same INT_%d INT_%d};\n", prev.id, child.id)
			}
		}
	}
	return b.String()
}
