// Package visualize specifies the Visualization Adapter contract: what the
// syncActions trampoline hands to an external hand-rendering collaborator.
// The cube-rendering implementation itself is out of scope; this package
// ships only the interface and a no-op default.
package visualize
