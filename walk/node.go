package walk

// nodeID addresses a node inside an arena.
type nodeID int32

const noParent nodeID = -1

// node is one step of a partial walk. Nodes are immutable once allocated;
// only refs changes.
type node struct {
	pos     Position
	heading Heading
	parent  nodeID
	length  int
	refs    int32 // frontier membership plus live children
}

// advance derives the successor taking turn t. The new node steps along the
// current heading and then faces the turned heading.
func (n node) advance(self nodeID, t Turn) node {
	return node{
		pos:     n.pos.Add(n.heading.Offset()),
		heading: t.Apply(n.heading),
		parent:  self,
		length:  n.length + 1,
	}
}

// arena stores the nodes of one engine. Parent links are indices, so chains
// can be shared by siblings without pointers, and released slots are reused.
type arena struct {
	nodes []node
	free  []nodeID
	live  int
}

// alloc stores n with a single reference and retains its parent.
func (a *arena) alloc(n node) nodeID {
	n.refs = 1
	if n.parent != noParent {
		a.nodes[n.parent].refs++
	}
	a.live++

	if k := len(a.free); k > 0 {
		id := a.free[k-1]
		a.free = a.free[:k-1]
		a.nodes[id] = n
		return id
	}
	a.nodes = append(a.nodes, n)
	return nodeID(len(a.nodes) - 1)
}

// get returns a copy of the node stored at id.
func (a *arena) get(id nodeID) node {
	return a.nodes[id]
}

// release drops one reference to id. Nodes left without references are
// freed, which may in turn free their ancestors.
func (a *arena) release(id nodeID) {
	for id != noParent {
		n := &a.nodes[id]
		n.refs--
		if n.refs > 0 {
			return
		}
		parent := n.parent
		*n = node{parent: noParent}
		a.free = append(a.free, id)
		a.live--
		id = parent
	}
}

// visits reports whether p appears anywhere on the chain starting at id.
func (a *arena) visits(id nodeID, p Position) bool {
	for id != noParent {
		n := &a.nodes[id]
		if n.pos == p {
			return true
		}
		id = n.parent
	}
	return false
}

// walkOf materialises the walk formed by the chain at parent followed by tail.
func (a *arena) walkOf(parent nodeID, tail node) Walk {
	steps := make([]Step, tail.length)
	steps[tail.length-1] = Step{Position: tail.pos, Heading: tail.heading}
	for i, id := tail.length-2, parent; id != noParent; i, id = i-1, a.nodes[id].parent {
		steps[i] = Step{Position: a.nodes[id].pos, Heading: a.nodes[id].heading}
	}
	return Walk{steps: steps}
}
