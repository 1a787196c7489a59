package palette

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tuannvm/canvasflow/internal/catalog"
)

// MediaType identifies a drag payload carrying an agent type descriptor.
const MediaType = "application/x-canvasflow-agent+json"

// ErrMediaType is returned when a payload was not produced by the palette.
var ErrMediaType = errors.New("unsupported drag media type")

// Payload is what travels from the palette to the canvas on drop.
type Payload struct {
	MediaType string
	Data      []byte
}

// Encode serializes a descriptor into a drag payload.
func Encode(d catalog.Descriptor) (Payload, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return Payload{}, fmt.Errorf("failed to encode agent type %s: %w", d.ID, err)
	}
	return Payload{MediaType: MediaType, Data: data}, nil
}

// Decode rebuilds the descriptor carried by p.
func Decode(p Payload) (catalog.Descriptor, error) {
	if p.MediaType != MediaType {
		return catalog.Descriptor{}, fmt.Errorf("%w: %q", ErrMediaType, p.MediaType)
	}
	var d catalog.Descriptor
	if err := json.Unmarshal(p.Data, &d); err != nil {
		return catalog.Descriptor{}, fmt.Errorf("failed to decode agent type: %w", err)
	}
	if d.ID == "" {
		return catalog.Descriptor{}, errors.New("agent type payload has no id")
	}
	return d, nil
}
