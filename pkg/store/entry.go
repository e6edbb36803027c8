package store

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/cuemby/baliusd/pkg/types"
)

// Field numbers for the wire-compatible LogEntry encoding shared with the
// chain-sync driver: 1 = next_block (bytes), 2 = undo_blocks (repeated bytes).
const (
	fieldNextBlock  = protowire.Number(1)
	fieldUndoBlocks = protowire.Number(2)
)

// encodeLogEntry serializes a LogEntry using protobuf's wire format so it
// stays byte-compatible with the out-of-process chain-sync driver without
// requiring a generated .pb.go for a message this small.
func encodeLogEntry(e types.LogEntry) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldNextBlock, protowire.BytesType)
	b = protowire.AppendBytes(b, e.NextBlock)
	for _, undo := range e.UndoBlocks {
		b = protowire.AppendTag(b, fieldUndoBlocks, protowire.BytesType)
		b = protowire.AppendBytes(b, undo)
	}
	return b
}

// decodeLogEntry parses the wire format written by encodeLogEntry.
func decodeLogEntry(raw []byte) (types.LogEntry, error) {
	var e types.LogEntry
	for len(raw) > 0 {
		num, typ, n := protowire.ConsumeTag(raw)
		if n < 0 {
			return e, fmt.Errorf("decoding logentry: %w", protowire.ParseError(n))
		}
		raw = raw[n:]

		if typ != protowire.BytesType {
			m := protowire.ConsumeFieldValue(num, typ, raw)
			if m < 0 {
				return e, fmt.Errorf("decoding logentry: %w", protowire.ParseError(m))
			}
			raw = raw[m:]
			continue
		}

		val, n := protowire.ConsumeBytes(raw)
		if n < 0 {
			return e, fmt.Errorf("decoding logentry: %w", protowire.ParseError(n))
		}
		raw = raw[n:]

		switch num {
		case fieldNextBlock:
			e.NextBlock = val
		case fieldUndoBlocks:
			e.UndoBlocks = append(e.UndoBlocks, val)
		}
	}
	return e, nil
}
