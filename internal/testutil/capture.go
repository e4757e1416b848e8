package testutil

import (
	"context"
	"errors"
	"reflect"
	"sync"

	"github.com/specialistvlad/gridvm/internal/raster"
	"github.com/specialistvlad/gridvm/internal/registry"
)

// CaptureModule registers a "capture" sink that keeps every delivered image
// in memory, keyed by the output's `key` argument.
type CaptureModule struct {
	mu     sync.Mutex
	images map[string]*raster.Image
	fail   error
}

type captureInput struct {
	Key string `arg:"key"`
}

// NewCaptureModule creates an empty capture sink.
func NewCaptureModule() *CaptureModule {
	return &CaptureModule{images: make(map[string]*raster.Image)}
}

// FailWith makes every later delivery return err.
func (m *CaptureModule) FailWith(err error) *CaptureModule {
	m.fail = err
	return m
}

// Image returns the image captured under key, or nil.
func (m *CaptureModule) Image(key string) *raster.Image {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.images[key]
}

// Register registers the "capture" sink.
func (m *CaptureModule) Register(r *registry.Registry) {
	r.RegisterSink("capture", &registry.RegisteredSink{
		NewInput:  func() any { return new(captureInput) },
		InputType: reflect.TypeOf(captureInput{}),
		Fn: func(_ context.Context, _ registry.Encoders, img *raster.Image, inputRaw any) error {
			input, ok := inputRaw.(*captureInput)
			if !ok {
				return errors.New("capture: unexpected input type")
			}
			if m.fail != nil {
				return m.fail
			}
			m.mu.Lock()
			defer m.mu.Unlock()
			m.images[input.Key] = img
			return nil
		},
	})
}
