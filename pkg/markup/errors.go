package markup

import "errors"

// ErrInvalidOperation is returned when a mutation would break the tree:
// appending a node that already has a parent, appending a node into its
// own subtree, mixing dialects, or appending a value that is neither a
// node nor text.
var ErrInvalidOperation = errors.New("markup: invalid operation")

// ErrInvalidAttributeValue is returned when an attribute value has no
// textual form, for example a func, channel or map.
var ErrInvalidAttributeValue = errors.New("markup: invalid attribute value")

// ErrUnknownDialectFeature is returned by a Dialect that has no rule for a
// question it was asked. XML returns it from IsVoidTag.
var ErrUnknownDialectFeature = errors.New("markup: dialect has no rule for this feature")

// ErrUnknownDialect is returned by ParseDialect for unrecognized names.
var ErrUnknownDialect = errors.New("markup: unknown dialect")

// Error describes a failed operation on a node.
type Error struct {
	Op  string // "append", "set attribute", ...
	Tag string // tag or attribute name involved, if any
	Err error  // one of the sentinel errors above
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Tag != "" {
		return e.Err.Error() + ": " + e.Op + " " + e.Tag
	}
	return e.Err.Error() + ": " + e.Op
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}
