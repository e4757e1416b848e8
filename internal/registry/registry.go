package registry

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sort"

	"github.com/specialistvlad/gridvm/internal/raster"
)

// Module is the interface that all core modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Encoders resolves a format name to its encoder.
type Encoders interface {
	Encoder(format string) (raster.Encoder, error)
}

// SinkFunc delivers a finished image somewhere. input is the value returned
// by the sink's NewInput, populated from the output block's arguments.
type SinkFunc func(ctx context.Context, enc Encoders, img *raster.Image, input any) error

// RegisteredSink holds the compiled Go parts of an output sink.
type RegisteredSink struct {
	NewInput  func() any
	InputType reflect.Type
	Fn        SinkFunc
}

// Registry holds all the registered encoders and sinks for a single
// application instance.
type Registry struct {
	EncoderRegistry map[string]raster.Encoder
	SinkRegistry    map[string]*RegisteredSink
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		EncoderRegistry: make(map[string]raster.Encoder),
		SinkRegistry:    make(map[string]*RegisteredSink),
	}
}

// RegisterEncoder registers an image encoder under a format name.
func (r *Registry) RegisterEncoder(format string, enc raster.Encoder) {
	if _, exists := r.EncoderRegistry[format]; exists {
		panic(fmt.Sprintf("encoder for format '%s' already registered", format))
	}
	slog.Debug("Registering encoder.", "format", format)
	r.EncoderRegistry[format] = enc
}

// RegisterSink registers a sink under an output kind.
func (r *Registry) RegisterSink(kind string, sink *RegisteredSink) {
	if _, exists := r.SinkRegistry[kind]; exists {
		panic(fmt.Sprintf("sink for kind '%s' already registered", kind))
	}
	slog.Debug("Registering sink.", "kind", kind)
	r.SinkRegistry[kind] = sink
}

// Encoder returns the encoder registered for format.
func (r *Registry) Encoder(format string) (raster.Encoder, error) {
	enc, ok := r.EncoderRegistry[format]
	if !ok {
		return nil, fmt.Errorf("unknown image format '%s' (known: %v)", format, r.EncoderNames())
	}
	return enc, nil
}

// Sink returns the sink registered for kind.
func (r *Registry) Sink(kind string) (*RegisteredSink, error) {
	sink, ok := r.SinkRegistry[kind]
	if !ok {
		return nil, fmt.Errorf("unknown output kind '%s' (known: %v)", kind, r.SinkNames())
	}
	return sink, nil
}

// EncoderNames lists registered formats in sorted order.
func (r *Registry) EncoderNames() []string {
	return sortedKeys(r.EncoderRegistry)
}

// SinkNames lists registered output kinds in sorted order.
func (r *Registry) SinkNames() []string {
	return sortedKeys(r.SinkRegistry)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
