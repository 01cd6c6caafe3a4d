package cmdtree

// node is one position in the shared-prefix command tree (spec §4.3). The
// root node has a nil component. Children are kept ordered with literals
// before arguments, so dispatch and suggestion can always try literals
// first without an extra sort.
type node struct {
	component *Component
	children  []*node
	parent    *node
	command   *Command // set only on a terminal node

	permission Permission // OR of every child's permission, cached
}

// Tree is the shared prefix tree every registered Command is inserted into.
// Insertion unifies shared prefixes; dispatch, suggestion and ambiguity
// detection all walk the same structure.
type Tree struct {
	root *node
}

// NewTree returns an empty command tree.
func NewTree() *Tree {
	return &Tree{root: &node{}}
}

// Root returns the tree's root node pointer, for the execution/suggestion
// engines to begin their walk from.
func (t *Tree) Root() *node {
	return t.root
}

// Insert adds cmd's component chain to the tree, reusing shared prefixes and
// attaching cmd as the owning command of the final node (spec §4.3's
// insertion algorithm). overrideExisting lets Manager's
// override_existing_commands setting replace a prior command at the same
// terminal instead of rejecting the insert.
func (t *Tree) Insert(cmd *Command, overrideExisting bool) error {
	if len(cmd.Components) == 0 {
		return newFailure(ErrBuilder, "command has no components to register")
	}

	cur := t.root

	for _, comp := range cmd.Components {
		child, err := cur.findOrCreateChild(comp)
		if err != nil {
			return err
		}

		cur = child
	}

	if cur.command != nil && !overrideExisting {
		return newFailuref(ErrAmbiguousCommand, "a command is already registered at %q", cmd.Name)
	}

	cur.command = cmd
	t.recomputePermissions()

	return nil
}

// findOrCreateChild implements one step of spec §4.3's insertion algorithm:
// find an equivalent existing child to reuse, else create and insert one in
// literals-before-arguments order.
func (n *node) findOrCreateChild(comp *Component) (*node, error) {
	for _, child := range n.children {
		if !child.component.sameKind(comp) {
			continue
		}

		switch comp.Kind {
		case KindLiteral:
			if child.component.aliasOverlap(comp) {
				return child, nil
			}
		case KindArgument:
			if child.component.argumentEquivalent(comp) {
				return child, nil
			}
		case KindFlagGroup:
			return child, nil
		}
	}

	// No equivalent found: reject literal siblings whose aliases collide
	// without being a full match (spec's "conflicting literals").
	if comp.Kind == KindLiteral {
		for _, child := range n.children {
			if child.component.Kind == KindLiteral && child.component.aliasOverlap(comp) {
				return nil, newFailuref(ErrAmbiguousCommand, "literal %q conflicts with an existing sibling", comp.Name)
			}
		}
	}

	child := &node{component: comp, parent: n}
	n.insertOrdered(child)

	return child, nil
}

func (c *Component) sameKind(other *Component) bool {
	return c.Kind == other.Kind
}

// insertOrdered keeps literal children before argument/flag-group children,
// each group in insertion order, so dispatch (spec §4.4 step 3/4) and
// suggestion (spec §4.6) never need to re-sort.
func (n *node) insertOrdered(child *node) {
	if child.component.Kind != KindLiteral {
		n.children = append(n.children, child)

		return
	}

	idx := len(n.children)
	for i, c := range n.children {
		if c.component.Kind != KindLiteral {
			idx = i

			break
		}
	}

	n.children = append(n.children, nil)
	copy(n.children[idx+1:], n.children[idx:])
	n.children[idx] = child
}

// DeleteRoot removes the subtree rooted at the literal child named name
// directly under the tree root, pruning now-empty interior ancestors.
func (t *Tree) DeleteRoot(name string) bool {
	for i, child := range t.root.children {
		if child.component.Kind == KindLiteral && child.component.Matches(name) {
			t.root.children = append(t.root.children[:i], t.root.children[i+1:]...)
			t.recomputePermissions()

			return true
		}
	}

	return false
}

// deleteRecursively removes n's entire subtree from its parent, then prunes
// any ancestor left with no owning command and no children (spec §4.3).
func deleteRecursively(n *node) {
	parent := n.parent
	if parent == nil {
		return
	}

	for i, c := range parent.children {
		if c == n {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)

			break
		}
	}

	for p := parent; p != nil && p.parent != nil; p = p.parent {
		if p.command == nil && len(p.children) == 0 {
			deleteRecursively(p)
		} else {
			break
		}
	}
}

// recomputePermissions refreshes every node's cached OR-of-children
// permission (spec §4.3's "Aggregated permission"), walked bottom-up isn't
// necessary since Permission.Or is associative; a single top-down pass that
// recurses into children first is enough, and the tree is small/rebuilt
// rarely (only at registration time).
func (t *Tree) recomputePermissions() {
	var walk func(n *node) Permission

	walk = func(n *node) Permission {
		agg := NoPermission
		if n.command != nil {
			agg = n.command.Permission
		}

		for i, child := range n.children {
			childPerm := walk(child)
			if i == 0 && n.command == nil {
				agg = childPerm
			} else {
				agg = agg.Or(childPerm)
			}
		}

		if n.component != nil && n.component.Permission.check != nil {
			agg = agg.Or(n.component.Permission)
		}

		n.permission = agg

		return agg
	}

	walk(t.root)
}

// ValidateAmbiguity runs the build-end ambiguity check (spec §4.3): no node
// may have two argument children that would both succeed on the empty
// prefix.
func (t *Tree) ValidateAmbiguity() error {
	var walk func(n *node) error

	walk = func(n *node) error {
		greedy := 0

		for _, child := range n.children {
			if child.component.Kind == KindArgument && child.component.parser.acceptsEmpty() {
				greedy++
			}
		}

		if greedy > 1 {
			return newFailuref(ErrAmbiguousCommand, "node has %d greedy argument children that could both match an empty prefix", greedy)
		}

		for _, child := range n.children {
			if err := walk(child); err != nil {
				return err
			}
		}

		return nil
	}

	return walk(t.root)
}
