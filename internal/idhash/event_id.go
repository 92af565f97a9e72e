// Package idhash encodes database event ids into opaque, reversible
// identifiers for the API boundary. Raw integer ids never leave the
// process; everything externally visible goes through a Codec.
package idhash

import (
	"errors"

	hashids "github.com/speps/go-hashids/v2"
)

// ErrInvalidID is returned when an external id does not decode to a
// single event id.
var ErrInvalidID = errors.New("invalid event id")

// DefaultMinLength keeps encoded ids at least 8 characters so short
// database ids are not guessable from the encoding length.
const DefaultMinLength = 8

// Codec translates between internal int64 event ids and their opaque
// boundary encoding. Safe for concurrent use.
type Codec struct {
	h *hashids.HashID
}

// NewCodec creates a Codec with the given salt. The salt must stay
// stable across deployments or previously issued ids stop resolving.
func NewCodec(salt string) (*Codec, error) {
	data := hashids.NewData()
	data.Salt = salt
	data.MinLength = DefaultMinLength

	h, err := hashids.NewWithData(data)
	if err != nil {
		return nil, err
	}
	return &Codec{h: h}, nil
}

// Encode returns the opaque form of an event id.
func (c *Codec) Encode(id int64) (string, error) {
	return c.h.EncodeInt64([]int64{id})
}

// Decode resolves an opaque id back to the internal event id.
// Returns ErrInvalidID for garbage input.
func (c *Codec) Decode(encoded string) (int64, error) {
	ids, err := c.h.DecodeInt64WithError(encoded)
	if err != nil || len(ids) != 1 {
		return 0, ErrInvalidID
	}
	return ids[0], nil
}
