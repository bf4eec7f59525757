package lsp

import (
	"fmt"
	"slices"

	"github.com/tidwall/gjson"

	"github.com/yukin371/lspenc/pkg/logger"
)

// Negotiator picks the position encoding a server answers with during
// initialize. It is read-only after construction and safe for concurrent use.
type Negotiator struct {
	log *logger.Logger

	// supported is the set of kinds the server can work in. Empty means all.
	supported []PositionEncodingKind

	// strict makes an unknown offered tag fail the negotiation instead of
	// being skipped.
	strict bool
}

// NegotiatorOption configures a Negotiator
type NegotiatorOption func(*Negotiator)

// WithSupported restricts the kinds the server accepts.
func WithSupported(kinds ...PositionEncodingKind) NegotiatorOption {
	return func(n *Negotiator) {
		n.supported = slices.Clone(kinds)
	}
}

// WithStrict controls how unknown offered tags are treated.
func WithStrict(strict bool) NegotiatorOption {
	return func(n *Negotiator) {
		n.strict = strict
	}
}

// NewNegotiator creates a negotiator. A nil log discards debug output.
func NewNegotiator(log *logger.Logger, opts ...NegotiatorOption) (*Negotiator, error) {
	if log == nil {
		log = logger.Discard()
	}
	n := &Negotiator{log: log}
	for _, opt := range opts {
		opt(n)
	}

	for _, k := range n.supported {
		if !k.IsValid() {
			return nil, fmt.Errorf("supported encodings: %w: %d", ErrInvalidKind, uint8(k))
		}
	}
	return n, nil
}

// Supported returns the accepted kinds in declaration order.
func (n *Negotiator) Supported() []PositionEncodingKind {
	var out []PositionEncodingKind
	for _, k := range PositionEncodingKinds() {
		if n.accepts(k) {
			out = append(out, k)
		}
	}
	return out
}

func (n *Negotiator) accepts(k PositionEncodingKind) bool {
	if len(n.supported) == 0 {
		return true
	}
	return slices.Contains(n.supported, k)
}

// Negotiate walks the client's offer in preference order and returns the
// first kind the server accepts. An empty offer, or one with no acceptable
// kind, yields UTF16.
func (n *Negotiator) Negotiate(offered []string) (PositionEncodingKind, error) {
	if len(offered) == 0 {
		n.log.Debug("Client offered no position encodings, using %s", DefaultPositionEncoding())
		return DefaultPositionEncoding(), nil
	}

	for _, tag := range offered {
		k, err := ParsePositionEncodingKind(tag)
		if err != nil {
			if n.strict {
				return 0, fmt.Errorf("negotiate position encoding: %w", err)
			}
			n.log.Debug("Skipping offered position encoding: %v", err)
			continue
		}
		if n.accepts(k) {
			n.log.Debug("Negotiated position encoding %s from offer %v", k, offered)
			return k, nil
		}
		n.log.Debug("Offered position encoding %s is not supported", k)
	}

	n.log.Debug("No acceptable position encoding in offer %v, using %s", offered, DefaultPositionEncoding())
	return DefaultPositionEncoding(), nil
}

// NegotiateParams reads capabilities.general.positionEncodings out of raw
// initialize params, or out of a whole initialize request, and negotiates.
func (n *Negotiator) NegotiateParams(raw []byte) (PositionEncodingKind, error) {
	if !gjson.ValidBytes(raw) {
		return 0, fmt.Errorf("initialize params: invalid JSON")
	}

	root := gjson.ParseBytes(raw)
	if method := root.Get("method"); method.Exists() {
		if method.String() != MethodInitialize {
			return 0, fmt.Errorf("expected %q request, got %q", MethodInitialize, method.String())
		}
		root = root.Get("params")
	}

	encodings := root.Get("capabilities.general.positionEncodings")
	if !encodings.Exists() {
		return n.Negotiate(nil)
	}
	if !encodings.IsArray() {
		return 0, fmt.Errorf("capabilities.general.positionEncodings: expected array, got %s", encodings.Type)
	}

	var offered []string
	for _, v := range encodings.Array() {
		if v.Type != gjson.String {
			return 0, fmt.Errorf("capabilities.general.positionEncodings: expected string elements, got %s", v.Type)
		}
		offered = append(offered, v.String())
	}
	return n.Negotiate(offered)
}

// NegotiateInitialize negotiates from decoded params.
func (n *Negotiator) NegotiateInitialize(params *InitializeParams) (PositionEncodingKind, error) {
	if params == nil {
		return n.Negotiate(nil)
	}
	return n.Negotiate(params.Capabilities.OfferedPositionEncodings())
}

// ServerCapabilitiesFor returns the capabilities announcing k. The kind is
// always written out, including UTF16.
func ServerCapabilitiesFor(k PositionEncodingKind) ServerCapabilities {
	return ServerCapabilities{PositionEncoding: &k}
}
