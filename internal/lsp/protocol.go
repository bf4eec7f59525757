package lsp

import "encoding/json"

// LSP Protocol Types that carry position encoding information, based on LSP 3.17
// Reference: https://microsoft.github.io/language-server-protocol/specifications/lsp/3.17/specification/

// Method name of the handshake request.
const MethodInitialize = "initialize"

// Position in a text document. Character is measured in the negotiated
// PositionEncodingKind.
type Position struct {
	Line      uint32 `json:"line"`
	Character uint32 `json:"character"`
}

type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// LSP Initialization

type InitializeParams struct {
	ProcessID    *int               `json:"processId"`
	ClientInfo   *ClientInfo        `json:"clientInfo,omitempty"`
	Locale       string             `json:"locale,omitempty"`
	RootURI      *string            `json:"rootUri"`
	Capabilities ClientCapabilities `json:"capabilities"`
}

type ClientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// ClientCapabilities keeps the sections this module does not interpret as raw
// JSON so they survive a decode/encode cycle untouched.
type ClientCapabilities struct {
	Workspace    json.RawMessage            `json:"workspace,omitempty"`
	TextDocument json.RawMessage            `json:"textDocument,omitempty"`
	Window       json.RawMessage            `json:"window,omitempty"`
	General      *GeneralClientCapabilities `json:"general,omitempty"`
}

type GeneralClientCapabilities struct {
	StaleRequestSupport *StaleRequestSupportCapabilities `json:"staleRequestSupport,omitempty"`
	RegularExpressions  *RegularExpressionsCapabilities  `json:"regularExpressions,omitempty"`
	Markdown            *MarkdownCapabilities            `json:"markdown,omitempty"`

	// PositionEncodings lists the encodings the client supports, most
	// preferred first. Kept as raw tags: a client may offer kinds newer
	// than this module knows about.
	PositionEncodings []string `json:"positionEncodings,omitempty"`
}

type StaleRequestSupportCapabilities struct {
	Cancel                 bool     `json:"cancel"`
	RetryOnContentModified []string `json:"retryOnContentModified"`
}

type RegularExpressionsCapabilities struct {
	Engine  string `json:"engine"`
	Version string `json:"version,omitempty"`
}

type MarkdownCapabilities struct {
	Parser      string   `json:"parser"`
	Version     string   `json:"version,omitempty"`
	AllowedTags []string `json:"allowedTags,omitempty"`
}

// OfferedPositionEncodings returns the client's offer, or nil if the client
// did not send one.
func (c ClientCapabilities) OfferedPositionEncodings() []string {
	if c.General == nil {
		return nil
	}
	return c.General.PositionEncodings
}

type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
	ServerInfo   *ServerInfo        `json:"serverInfo,omitempty"`
}

type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

type ServerCapabilities struct {
	// PositionEncoding is omitted when nil, which the client reads as UTF16.
	PositionEncoding *PositionEncodingKind `json:"positionEncoding,omitempty"`
}

// EffectivePositionEncoding returns the encoding in force for a server that
// answered with these capabilities.
func (c ServerCapabilities) EffectivePositionEncoding() PositionEncodingKind {
	if c.PositionEncoding == nil {
		return DefaultPositionEncoding()
	}
	return *c.PositionEncoding
}
