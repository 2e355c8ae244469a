package constraint

import "errors"

var (
	// ErrCannotAddChildToLeaf is returned when AddChild is called on a leaf.
	ErrCannotAddChildToLeaf = errors.New("cannot add child to a leaf node")
	// ErrCannotAddChildToNot is returned when a NOT node already has its child.
	ErrCannotAddChildToNot = errors.New("cannot add child to a NOT node")
)
