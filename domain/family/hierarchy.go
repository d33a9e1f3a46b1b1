package family

// HierarchyNode is one display node of the projected tree: an anchor person,
// the partners rendered alongside the anchor at the same generation, and the
// ordered child subtrees. Layout geometry is the renderer's problem; the
// projection stops at this structure.
type HierarchyNode struct {
	Person   *Person          `json:"person"`
	Partners []*Person        `json:"partners,omitempty"`
	Children []*HierarchyNode `json:"children,omitempty"`
}

// Projector turns a family snapshot into a rooted tree. Tree edges follow
// ChildrenIDs only; PartnerIDs never produce descent. The graph is allowed
// to contain directed cycles through ChildrenIDs and people reachable from
// several parents, so the walk tracks both the current root-path and the
// set of people already placed:
//
//   - a child already on the current path is a cycle; the edge is dropped
//     and the parent ends as a leaf on that branch
//   - a child already placed under another branch is skipped so the tree
//     never duplicates a node
//
// A projector instance is good for a single Project call.
type Projector struct {
	people     map[string]*Person
	placed     map[string]bool
	cycleTrips int
}

// NewProjector builds a projector over a family snapshot. The snapshot must
// not be mutated while projecting; take it from Graph.Snapshot.
func NewProjector(data *FamilyData) *Projector {
	people := map[string]*Person{}
	if data != nil && data.People != nil {
		people = data.People
	}
	return &Projector{
		people: people,
		placed: make(map[string]bool),
	}
}

// Project returns the rooted tree for rootID, or nil when rootID does not
// resolve to a stored person.
func (pr *Projector) Project(rootID string) *HierarchyNode {
	if _, ok := pr.people[rootID]; !ok {
		return nil
	}
	return pr.descend(rootID, make(map[string]bool))
}

// CycleGuardTrips reports how many child edges were dropped because the
// child was already an ancestor on the path.
func (pr *Projector) CycleGuardTrips() int {
	return pr.cycleTrips
}

func (pr *Projector) descend(id string, onPath map[string]bool) *HierarchyNode {
	person := pr.people[id]
	if person == nil {
		return nil
	}

	onPath[id] = true
	pr.placed[id] = true

	node := &HierarchyNode{Person: person.Clone()}

	for _, partnerID := range person.PartnerIDs {
		if partner, ok := pr.people[partnerID]; ok {
			node.Partners = append(node.Partners, partner.Clone())
		}
	}

	for _, childID := range person.ChildrenIDs {
		if onPath[childID] {
			pr.cycleTrips++
			continue
		}
		if pr.placed[childID] {
			continue
		}
		if child := pr.descend(childID, onPath); child != nil {
			node.Children = append(node.Children, child)
		}
	}

	delete(onPath, id)
	return node
}

// Depth returns the number of generations in a projected tree; a lone root
// counts as one.
func (n *HierarchyNode) Depth() int {
	if n == nil {
		return 0
	}
	max := 0
	for _, child := range n.Children {
		if d := child.Depth(); d > max {
			max = d
		}
	}
	return max + 1
}

// Count returns the number of anchor nodes in the tree, partners excluded.
func (n *HierarchyNode) Count() int {
	if n == nil {
		return 0
	}
	total := 1
	for _, child := range n.Children {
		total += child.Count()
	}
	return total
}

// Project is a convenience wrapper projecting a consistent snapshot of the
// graph rooted at rootID.
func (g *Graph) Project(rootID string) *HierarchyNode {
	return NewProjector(g.Snapshot()).Project(rootID)
}
