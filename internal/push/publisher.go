package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/titledesk/title-review/internal/entity"
)

// Publisher transmits a reviewed extraction result to the downstream consumer.
// Publication is terminal per session; implementations must not retry
// silently on structured rejection.
type Publisher interface {
	Publish(ctx context.Context, result *entity.ExtractionResult) error
}

// HTTPPublisher POSTs the reviewed result as JSON to a fixed endpoint.
type HTTPPublisher struct {
	URL    string
	Client *http.Client
	Logger *slog.Logger
}

func NewHTTPPublisher(url string, logger *slog.Logger) *HTTPPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPPublisher{
		URL:    url,
		Client: &http.Client{Timeout: 30 * time.Second},
		Logger: logger,
	}
}

func (p *HTTPPublisher) Publish(ctx context.Context, result *entity.ExtractionResult) error {
	body, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return fmt.Errorf("push request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("downstream rejected push: %s: %s", resp.Status, string(msg))
	}

	p.Logger.Info("push.downstream.ok",
		"result_id", result.ID,
		"vehicles", len(result.VehicleTitles),
		"status", resp.Status,
	)
	return nil
}

// LogPublisher records the publication without transmitting anywhere. Used
// when no downstream endpoint is configured.
type LogPublisher struct {
	Logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{Logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, result *entity.ExtractionResult) error {
	p.Logger.Info("push.downstream.ok",
		"result_id", result.ID,
		"vehicles", len(result.VehicleTitles),
		"edited_fields", result.EditedFieldCount(),
	)
	return nil
}
