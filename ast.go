// ast.go
package braket

// node is one vertex of the parsed expression tree. The evaluator walks
// these bottom-up against an EvalContext.
type node interface {
	pos() int
}

type numNode struct {
	at  int
	val float64
}

type identNode struct {
	at   int
	name string
}

type symNode struct {
	at   int
	name string
}

type unaryNode struct {
	at int
	op tokenKind
	x  node
}

type binaryNode struct {
	at       int
	op       tokenKind
	lhs, rhs node
}

type callNode struct {
	at   int
	name string
	args []node
}

type ketNode struct {
	at     int
	labels []node
}

type braNode struct {
	at     int
	labels []node
}

func (n numNode) pos() int    { return n.at }
func (n identNode) pos() int  { return n.at }
func (n symNode) pos() int    { return n.at }
func (n unaryNode) pos() int  { return n.at }
func (n binaryNode) pos() int { return n.at }
func (n callNode) pos() int   { return n.at }
func (n ketNode) pos() int    { return n.at }
func (n braNode) pos() int    { return n.at }

// references reports whether any identifier in the tree equals name.
func references(n node, name string) bool {
	switch x := n.(type) {
	case identNode:
		return x.name == name
	case unaryNode:
		return references(x.x, name)
	case binaryNode:
		return references(x.lhs, name) || references(x.rhs, name)
	case callNode:
		if x.name == name {
			return true
		}
		for _, a := range x.args {
			if references(a, name) {
				return true
			}
		}
	case ketNode:
		for _, l := range x.labels {
			if references(l, name) {
				return true
			}
		}
	case braNode:
		for _, l := range x.labels {
			if references(l, name) {
				return true
			}
		}
	}
	return false
}
