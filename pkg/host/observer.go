package host

// MutationKind identifies the kind of change recorded in a Mutation.
type MutationKind uint8

const (
	MutationInsert MutationKind = iota + 1 // Node inserted under Target
	MutationRemove                         // Node removed from Target
	MutationText                           // Target's character data changed
	MutationAttr                           // Target's attribute Name changed
)

// String returns the string representation of the MutationKind.
func (k MutationKind) String() string {
	switch k {
	case MutationInsert:
		return "insert"
	case MutationRemove:
		return "remove"
	case MutationText:
		return "text"
	case MutationAttr:
		return "attr"
	default:
		return "unknown"
	}
}

// Mutation records a single change to the host tree.
type Mutation struct {
	Kind   MutationKind
	Target *Node  // Node whose children, data or attributes changed
	Node   *Node  // Inserted or removed child
	Name   string // Attribute name for MutationAttr
}

// Observer receives mutation records.
type Observer interface {
	Observe(m Mutation)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(m Mutation)

// Observe implements Observer.
func (f ObserverFunc) Observe(m Mutation) {
	f(m)
}

// SetObserver attaches o to n. Mutations of n and its descendants are
// delivered to the nearest observer found walking up from the mutated node.
// Passing nil detaches the observer.
func (n *Node) SetObserver(o Observer) {
	n.observer = o
}

func (n *Node) notify(m Mutation) {
	for p := n; p != nil; p = p.parent {
		if p.observer != nil {
			p.observer.Observe(m)
			return
		}
	}
}
