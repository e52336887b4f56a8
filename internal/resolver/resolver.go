// Package resolver defines the object-lookup capability the render engine
// depends on: a dotted path in, the object's signature, raw docstring and
// member names out.
package resolver

import "fmt"

// Object is the resolved documentation target for one dotted path.
type Object struct {
	// Path is the dotted path the object was resolved from.
	Path string
	// Signature is the call signature, empty for non-callable objects.
	Signature string
	// Docstring is the raw docstring text, possibly empty.
	Docstring string
	// Members lists the object's enumerable member names in the resolver's
	// natural order. Member selection preserves this order.
	Members []string
}

// Resolver looks up objects by dotted path. Member lookups reuse the same
// resolver with a dot-qualified child path.
type Resolver interface {
	Resolve(path string) (*Object, error)
}

// NotFoundError reports an unresolvable dotted path.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("object %q not found", e.Path)
}
