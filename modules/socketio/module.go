// Package socketio provides the `socketio` output sink, which publishes the
// finished image as one event to a socket.io server.
package socketio

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"net/url"
	"reflect"
	"sync/atomic"
	"time"

	"github.com/specialistvlad/gridvm/internal/config"
	"github.com/specialistvlad/gridvm/internal/ctxlog"
	"github.com/specialistvlad/gridvm/internal/raster"
	"github.com/specialistvlad/gridvm/internal/registry"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// DefaultEvent is the event name used when the block sets none.
const DefaultEvent = "frame"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments of an `output "socketio"` block.
type Input struct {
	URL                string `arg:"url"`
	Namespace          string `arg:"namespace,optional"`
	Event              string `arg:"event,optional"`
	Format             string `arg:"format,optional"`
	AckEvent           string `arg:"ack_event,optional"`
	Timeout            string `arg:"timeout,optional"`
	InsecureSkipVerify bool   `arg:"insecure_skip_verify,optional"`
}

// Frame is the event payload.
type Frame struct {
	Size       int    `json:"size"`
	Format     string `json:"format"`
	Foreground int    `json:"foreground"`
	Image      string `json:"image"`
}

// opResult is a private struct to safely pass results through the done channel.
type opResult struct {
	data any
	err  error
}

// report delivers the first outcome; later ones (e.g. repeated
// connect_error during reconnection) are dropped so event handlers never block.
func report(done chan<- opResult, res opResult) {
	select {
	case done <- res:
	default:
	}
}

// withDefaults fills optional arguments and parses the timeout.
func (in *Input) withDefaults() (Input, time.Duration, error) {
	out := *in
	if out.Event == "" {
		out.Event = DefaultEvent
	}
	if out.Format == "" {
		out.Format = config.DefaultFormat
	}
	if out.Namespace == "" {
		out.Namespace = "/"
	}
	timeout := 10 * time.Second
	if out.Timeout != "" {
		d, err := time.ParseDuration(out.Timeout)
		if err != nil {
			return out, 0, fmt.Errorf("invalid timeout %q: %w", out.Timeout, err)
		}
		if d <= 0 {
			return out, 0, fmt.Errorf("timeout must be positive, got %s", d)
		}
		timeout = d
	}
	return out, timeout, nil
}

// NewFrame encodes img with the named format and wraps it as an event payload.
func NewFrame(enc registry.Encoders, format string, img *raster.Image) (*Frame, error) {
	encoder, err := enc.Encoder(format)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := encoder.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode %s image: %w", format, err)
	}
	return &Frame{
		Size:       img.Size,
		Format:     format,
		Foreground: img.ForegroundCount(),
		Image:      base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}

// Publish is the handler for the `socketio` sink.
func Publish(ctx context.Context, enc registry.Encoders, img *raster.Image, input any) error {
	in, timeout, err := input.(*Input).withDefaults()
	if err != nil {
		return err
	}
	logger := ctxlog.FromContext(ctx).With("sink", "socketio", "url", in.URL, "event", in.Event, "ackEvent", in.AckEvent)
	logger.Debug("Handler started")
	defer logger.Debug("Handler finished")

	frame, err := NewFrame(enc, in.Format, img)
	if err != nil {
		return err
	}

	parsedURL, err := url.Parse(in.URL)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return fmt.Errorf("URL %q must include a scheme and host", in.URL)
	}

	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	if parsedURL.Path != "" {
		opts.SetPath(parsedURL.Path)
	}
	if in.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(in.Namespace, opts)
	defer func() {
		logger.Debug("Disconnecting socket client")
		io.Disconnect()
	}()

	var isConnected atomic.Bool
	done := make(chan opResult, 1)

	io.On(types.EventName("connect"), func(...any) {
		isConnected.Store(true)
		logger.Info("Connected, publishing frame.", "sid", io.Id(), "bytes", len(frame.Image))
		io.Emit(in.Event, frame)
		if in.AckEvent == "" {
			report(done, opResult{})
		}
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		var err error = fmt.Errorf("socket.io connection failed")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = fmt.Errorf("socket.io connection failed: %w", e)
			}
		}
		report(done, opResult{err: err})
	})

	if in.AckEvent != "" {
		io.On(types.EventName(in.AckEvent), func(data ...any) {
			var ack any
			if len(data) > 0 {
				ack = data[0]
			}
			report(done, opResult{data: ack})
		})
	}

	io.Connect()

	select {
	case <-opCtx.Done():
		if isConnected.Load() {
			return fmt.Errorf("timed out after connecting while waiting for event '%s'", in.AckEvent)
		}
		return fmt.Errorf("timed out while waiting for initial connection")
	case res := <-done:
		if res.err != nil {
			return res.err
		}
		logger.Info("Frame published.", "ack", res.data)
		return nil
	}
}

// Register registers the sink with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterSink("socketio", &registry.RegisteredSink{
		NewInput:  func() any { return new(Input) },
		InputType: reflect.TypeOf(Input{}),
		Fn:        Publish,
	})
}
