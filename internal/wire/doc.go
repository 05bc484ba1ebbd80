// Package wire maps between the transport representation of optimization
// problems and the domain model.
//
// [ToDomain] converts inbound problems, filling defaults for absent
// structure; [ToWire] converts solutions back and never fails. [Assemble]
// reconstructs one wire problem from a stream of tagged fragments for
// requests too large for a single message.
//
// Default filling and validation are deliberately separate passes: this
// package fills absent structure with sane defaults (never an error), and
// the domain validation engine checks consistency of whatever was supplied
// or defaulted (can error).
package wire
