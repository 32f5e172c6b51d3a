package backend

import (
	"github.com/google/uuid"
)

// Operation kinds mirrored to the backend.
const (
	OpSequenceEdit     = "sequence_edit"
	OpAnnotationUpsert = "annotation_upsert"
	OpAnnotationDelete = "annotation_delete"
	OpSessionOpen      = "session_open"
	OpSessionClose     = "session_close"
)

// SpliceRecord is one wire-format edit step.
type SpliceRecord struct {
	Pos      int    `json:"pos"`
	Removed  int    `json:"removed"`
	Inserted string `json:"inserted,omitempty"`
}

// AnnotationRecord is the wire form of an annotation.
type AnnotationRecord struct {
	ID         string            `json:"id"`
	Caption    string            `json:"caption"`
	Type       string            `json:"type"`
	Span       string            `json:"span"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Operation is one mirrored editor operation. OpID makes redelivery
// idempotent: the server treats a repeated id as already applied.
type Operation struct {
	OpID     string             `json:"op_id"`
	Kind     string             `json:"kind"`
	Document string             `json:"document"`
	Revision uint64             `json:"revision,omitempty"`
	Splices  []SpliceRecord     `json:"splices,omitempty"`
	Records  []AnnotationRecord `json:"records,omitempty"`
	Removed  []string           `json:"removed,omitempty"`
}

// NewOperation builds an operation with a fresh id.
func NewOperation(kind, document string) Operation {
	return Operation{OpID: uuid.NewString(), Kind: kind, Document: document}
}

// Ack is the server's response to one operation.
type Ack struct {
	OpID  string `json:"op_id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}
