// Package host reconstructs sample streams on the receiving side of
// the link.
package host

// A Session drains a byte source through the wire parser and maintains
// the sliding history buffer and the sampling-rate estimate for one
// decoding session. The presentation layer (plotter, shell, monitor)
// consumes decoded updates through a handler callback and the snapshot
// accessors; it never touches the parser state.
