package layout

import (
	"fmt"

	tp "github.com/xlab/treeprint"
)

// Dump renders the box tree of doc, one box per line, with the words of
// inline boxes listed beneath them.
func Dump(doc *Document) string {
	p := tp.New()
	branch := p.AddBranch(fmt.Sprintf("document x=%g y=%g w=%g h=%g", doc.X, doc.Y, doc.Width, doc.Height))
	if doc.Root != nil {
		dumpBox(branch, doc.Root)
	}
	return p.String()
}

func dumpBox(p tp.Tree, box *Box) {
	if len(box.Children) == 0 && len(box.Words) == 0 {
		p.AddNode(box.String())
		return
	}
	branch := p.AddBranch(box.String())
	for _, w := range box.Words {
		branch.AddNode(fmt.Sprintf("%q x=%g y=%g %s %s", w.Text, w.X, w.Y, w.Font, w.Color))
	}
	for _, child := range box.Children {
		dumpBox(branch, child)
	}
}
