// Package protoio persists protobuf messages as binary files.
package protoio

import (
	"os"
	"path/filepath"

	"google.golang.org/protobuf/proto"

	xe "github.com/flowkit/flowkit/pkg/errors"
)

// Load reads the whole file at path and parses it as a binary-encoded M.
//
// Malformed or truncated content is a parse error; nothing is retried.
func Load[M any, PM interface {
	proto.Message
	*M
}](path string) (PM, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, xe.Wrap(err)
	}

	msg := PM(new(M))
	if err := proto.Unmarshal(content, msg); err != nil {
		return nil, xe.WrapWithNote("parsing "+path, err)
	}
	return msg, nil
}

// Save writes the binary encoding of msg to path, creating intermediate
// directories as needed and overwriting any existing file.
func Save(msg proto.Message, path string) error {
	encoded, err := proto.Marshal(msg)
	if err != nil {
		return xe.Wrap(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return xe.Wrap(err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return xe.Wrap(err)
	}
	return nil
}
