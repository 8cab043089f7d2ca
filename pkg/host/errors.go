package host

import "errors"

var (
	// ErrNotFound is returned when a child or reference node is not a child
	// of the node being mutated.
	ErrNotFound = errors.New("node is not a child of this node")

	// ErrHierarchy is returned when a mutation would produce an invalid
	// tree: a nil child, a text node gaining children, or a node being
	// inserted into one of its own descendants.
	ErrHierarchy = errors.New("hierarchy request error")
)

// Error describes a failed host tree mutation.
type Error struct {
	// Op is the mutation that failed (e.g. "InsertBefore").
	Op string

	// Parent is the node the mutation was invoked on.
	Parent *Node

	// Child is the node being inserted or removed, if any.
	Child *Node

	// Err is ErrNotFound or ErrHierarchy.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Parent != nil {
		return "host: " + e.Op + " on " + e.Parent.describe() + ": " + e.Err.Error()
	}
	return "host: " + e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying sentinel for errors.Is support.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op string, parent, child *Node, err error) *Error {
	return &Error{Op: op, Parent: parent, Child: child, Err: err}
}
