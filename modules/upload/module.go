// Package upload provides the `upload` output sink, which encodes the image
// and sends it in a single HTTP request, typically a PUT to a pre-signed
// object storage URL.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/specialistvlad/gridvm/internal/config"
	"github.com/specialistvlad/gridvm/internal/ctxlog"
	"github.com/specialistvlad/gridvm/internal/raster"
	"github.com/specialistvlad/gridvm/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// httpClient is shared by all uploads to reuse TCP connections.
var httpClient = &http.Client{}

const defaultTimeout = 30 * time.Second

// Input defines the arguments of an `output "upload"` block.
type Input struct {
	URL     string            `arg:"url"`
	Method  string            `arg:"method,optional"`
	Format  string            `arg:"format,optional"`
	Headers map[string]string `arg:"headers,optional"`
	Timeout string            `arg:"timeout,optional"`
}

// contentType picks the Content-Type for an encoder's file extension.
func contentType(ext string) string {
	if ext == ".pgm" {
		return "image/x-portable-graymap"
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}

// Upload is the handler for the `upload` sink. Any 2xx response counts as
// success.
func Upload(ctx context.Context, enc registry.Encoders, img *raster.Image, input any) error {
	in := input.(*Input)
	method := strings.ToUpper(in.Method)
	if method == "" {
		method = http.MethodPut
	}
	if method != http.MethodPut && method != http.MethodPost {
		return fmt.Errorf("unsupported upload method '%s': must be PUT or POST", in.Method)
	}
	format := in.Format
	if format == "" {
		format = config.DefaultFormat
	}
	timeout := defaultTimeout
	if in.Timeout != "" {
		d, err := time.ParseDuration(in.Timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid timeout %q", in.Timeout)
		}
		timeout = d
	}

	u, err := url.Parse(in.URL)
	if err != nil {
		return fmt.Errorf("invalid upload url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid upload url '%s': must be an absolute http(s) url", in.URL)
	}
	logger := ctxlog.FromContext(ctx).With("sink", "upload", "method", method, "host", u.Host, "format", format)

	encoder, err := enc.Encoder(format)
	if err != nil {
		return err
	}
	var body bytes.Buffer
	if err := encoder.Encode(&body, img); err != nil {
		return fmt.Errorf("failed to encode %s image: %w", format, err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(reqCtx, method, in.URL, bytes.NewReader(body.Bytes()))
	if err != nil {
		return fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType(encoder.Extension()))
	for k, v := range in.Headers {
		req.Header.Set(k, v)
	}

	logger.Info("Uploading image.", "bytes", body.Len(), "contentType", req.Header.Get("Content-Type"))
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("upload failed with status: %s", resp.Status)
	}
	logger.Info("Image uploaded.", "status", resp.Status)
	return nil
}

// Register registers the sink with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterSink("upload", &registry.RegisteredSink{
		NewInput:  func() any { return new(Input) },
		InputType: reflect.TypeOf(Input{}),
		Fn:        Upload,
	})
}
