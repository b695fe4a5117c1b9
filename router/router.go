// Package router dispatches decoded CMDUs by (origin, opcode). Rules are
// registered by the supervisor as closures; the table itself is pure
// mechanics plus the translate-and-forward helper, so routing behaviour is
// testable independently of supervisor state.
package router

import (
	"fmt"
	"log/slog"

	"github.com/abelviageiro/prplMesh/errors"
	"github.com/abelviageiro/prplMesh/message"
)

// Outbound is a message a rule wants sent to a peer.
type Outbound struct {
	To   message.Origin
	CMDU *message.CMDU
}

// HandlerFunc handles one inbound CMDU and returns any messages to send.
// Returning a nil slice means the message was absorbed.
type HandlerFunc func(in *message.CMDU) ([]Outbound, error)

// Key identifies one routing rule.
type Key struct {
	Origin message.Origin
	Op     message.ActionOp
}

// Table is the dispatch table keyed by (origin, opcode).
type Table struct {
	rules  map[Key]HandlerFunc
	logger *slog.Logger
}

// NewTable creates an empty dispatch table.
func NewTable(logger *slog.Logger) *Table {
	if logger == nil {
		logger = slog.Default()
	}
	return &Table{
		rules:  make(map[Key]HandlerFunc),
		logger: logger.With("component", "router"),
	}
}

// Register installs a rule. Registering the same key twice is a programming
// error and panics at startup.
func (t *Table) Register(origin message.Origin, op message.ActionOp, h HandlerFunc) {
	key := Key{Origin: origin, Op: op}
	if _, exists := t.rules[key]; exists {
		panic(fmt.Sprintf("router: duplicate rule for %s/%s", origin, op))
	}
	t.rules[key] = h
}

// Dispatch routes one inbound vendor CMDU from the given origin.
func (t *Table) Dispatch(origin message.Origin, in *message.CMDU) ([]Outbound, error) {
	if in.Vendor == nil {
		return nil, errors.WrapInvalid(errors.ErrMalformedFrame, "router", "Dispatch", "vendor header check")
	}

	h, ok := t.rules[Key{Origin: origin, Op: in.Vendor.Op}]
	if !ok {
		t.logger.Error("unknown message", "origin", origin.String(), "action_op", in.Vendor.Op.String())
		return nil, errors.WrapInvalid(errors.ErrUnknownActionOp, "router", "Dispatch", in.Vendor.Op.String())
	}
	return h(in)
}

// Has reports whether a rule is registered for the key.
func (t *Table) Has(origin message.Origin, op message.ActionOp) bool {
	_, ok := t.rules[Key{Origin: origin, Op: op}]
	return ok
}

// Translate re-headers a CMDU under a new opcode, carrying the payload value
// across unchanged. This is the copy-faithful core of every
// translate-and-forward rule: the forwarded message is structurally identical
// to its source.
func Translate(in *message.CMDU, op message.ActionOp) *message.CMDU {
	out := message.NewVendor(op, in.Payload)
	if in.Vendor != nil {
		out.Vendor.ID = in.Vendor.ID
	}
	return out
}

// Forward builds the single-destination result every plain
// translate-and-forward rule returns.
func Forward(to message.Origin, c *message.CMDU) []Outbound {
	return []Outbound{{To: to, CMDU: c}}
}
