package server

import (
	"encoding/json"
	"io"

	"github.com/opt-labs/solverd/internal/wire"
)

// NDJSONStream reads newline-delimited JSON chunk frames from a request
// body and exposes them as a wire.ChunkStream. A clean end of input ends
// the stream; a malformed frame or a transport read error aborts assembly.
type NDJSONStream struct {
	dec *json.Decoder
}

// NewNDJSONStream wraps a request body.
func NewNDJSONStream(r io.Reader) *NDJSONStream {
	return &NDJSONStream{dec: json.NewDecoder(r)}
}

// Next returns the next chunk, or io.EOF at end of input.
func (s *NDJSONStream) Next() (wire.Chunk, error) {
	var chunk wire.Chunk
	if err := s.dec.Decode(&chunk); err != nil {
		return wire.Chunk{}, err
	}
	return chunk, nil
}
