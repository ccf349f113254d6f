package libdiff

import "github.com/signadot/go-kdl/ir"

// ToDocument renders changes as a KDL document, one node per change:
//
//	delete "a[0]" {
//	    a 1
//	}
//	modify "b[1]" {
//	    b 1
//	    b 2
//	}
func ToDocument(cs []*Change) *ir.Document {
	doc := ir.NewDocument()
	for _, c := range cs {
		n := ir.NewNode(c.Op.String()).AddArg(ir.FromString(c.Path()))
		if c.From != nil {
			n.AddChild(c.From.Clone())
		}
		if c.To != nil {
			n.AddChild(c.To.Clone())
		}
		doc.Add(n)
	}
	return doc
}
