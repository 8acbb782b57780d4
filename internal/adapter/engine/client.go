// Package engine is a streaming HTTP client for a remote simulation engine.
// It submits a run and exposes the chunked response body as stream fragments,
// making it a drop-in chunk source for the pipeline alongside the Kafka
// reader.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/couchcryptid/sim-results-etl/internal/domain"
	"github.com/couchcryptid/sim-results-etl/internal/pipeline"
)

const extractBufferSize = 4096

// RunRequest describes one simulation run to submit to the remote engine.
type RunRequest struct {
	Code       string
	Simulation string
	Replicates int
	// ExternalData is the serialized virtual file set for the engine sandbox,
	// prepared by the caller. Empty means no external files.
	ExternalData string
}

// Client submits simulation runs to a remote engine and streams back the
// response. It implements pipeline.ChunkExtractor for one run at a time; no
// retries, by design — transport-level retry belongs to the caller.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger

	body io.ReadCloser
}

// NewClient creates a remote engine client. The apiKey is forwarded verbatim
// with each run submission; the client takes no other stance on auth.
func NewClient(endpoint, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			// No overall timeout: the response streams for the lifetime of
			// the simulation. Cancellation comes from the request context.
			Timeout: 0,
		},
		logger: logger,
	}
}

// Start submits the run and opens the response stream. Extract may be called
// once Start returns nil.
func (c *Client) Start(ctx context.Context, run RunRequest) error {
	if c.body != nil {
		return errors.New("engine client: run already in progress")
	}

	form := url.Values{
		"code":       {run.Code},
		"name":       {run.Simulation},
		"replicates": {strconv.Itoa(run.Replicates)},
		"apiKey":     {c.apiKey},
	}
	if run.ExternalData != "" {
		form.Set("externalData", run.ExternalData)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create run request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("submit run: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return fmt.Errorf("engine returned status %d: %s", resp.StatusCode, body)
	}

	c.body = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			c.body = nil
			return fmt.Errorf("open gzip stream: %w", err)
		}
		c.body = &gzipBody{gz: gz, underlying: resp.Body}
	}

	c.logger.Info("engine run started", "simulation", run.Simulation, "replicates", run.Replicates)
	return nil
}

// Extract reads the next fragment off the response stream. Returns
// pipeline.ErrStreamDone once the engine closes the stream.
func (c *Client) Extract(ctx context.Context) (domain.RawChunk, error) {
	if c.body == nil {
		return domain.RawChunk{}, errors.New("engine client: no run in progress")
	}
	if err := ctx.Err(); err != nil {
		return domain.RawChunk{}, err
	}

	buf := make([]byte, extractBufferSize)
	n, err := c.body.Read(buf)
	if n > 0 {
		return domain.RawChunk{Text: string(buf[:n]), Timestamp: time.Now().UTC()}, nil
	}
	if errors.Is(err, io.EOF) {
		return domain.RawChunk{}, pipeline.ErrStreamDone
	}
	return domain.RawChunk{}, err
}

// Close tears down the response stream if one is open.
func (c *Client) Close() error {
	if c.body == nil {
		return nil
	}
	err := c.body.Close()
	c.body = nil
	return err
}

// gzipBody closes both the gzip reader and the HTTP body beneath it.
type gzipBody struct {
	gz         *gzip.Reader
	underlying io.ReadCloser
}

func (g *gzipBody) Read(p []byte) (int, error) {
	return g.gz.Read(p)
}

func (g *gzipBody) Close() error {
	gzErr := g.gz.Close()
	if err := g.underlying.Close(); err != nil {
		return err
	}
	return gzErr
}
