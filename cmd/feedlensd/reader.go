package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/mkarren/feedlens/internal/domain"
	"github.com/mkarren/feedlens/internal/events"
)

// maxLineBytes bounds a single discovery line. Deep comment trees
// serialize large, so this is well above typical feed payloads.
const maxLineBytes = 4 << 20

// discoveryRecord is one discovered item on the wire: a kind
// discriminator plus the matching payload.
type discoveryRecord struct {
	Kind    string          `json:"kind"`
	Post    *domain.Post    `json:"post,omitempty"`
	Comment *domain.Comment `json:"comment,omitempty"`
}

// item converts the wire record into a validated domain item.
func (r discoveryRecord) item() (domain.ContentItem, error) {
	switch domain.ItemKind(r.Kind) {
	case domain.ItemKindPost:
		if r.Post == nil {
			return nil, fmt.Errorf("post record without post payload")
		}
		if err := r.Post.Validate(); err != nil {
			return nil, err
		}
		return r.Post, nil

	case domain.ItemKindComment:
		if r.Comment == nil {
			return nil, fmt.Errorf("comment record without comment payload")
		}
		if err := r.Comment.Validate(); err != nil {
			return nil, err
		}
		return r.Comment, nil

	default:
		return nil, fmt.Errorf("unknown item kind %q", r.Kind)
	}
}

// consume reads the JSON-lines discovery stream until EOF or context
// cancellation. Each line is either a single record or an array of
// records; an array is delivered as one batch event, which is the unit
// the per-batch thread cap applies to. Malformed lines and invalid
// items are logged and skipped.
func (app *application) consume(ctx context.Context, input io.Reader) error {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			app.logger.Info("discovery stream interrupted")
			return nil
		default:
		}

		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		records, err := decodeLine(line)
		if err != nil {
			app.logger.Warn("skipping malformed discovery line",
				slog.Int("line", lineNo),
				slog.String("error", err.Error()))
			continue
		}

		items := make([]domain.ContentItem, 0, len(records))
		for _, rec := range records {
			item, err := rec.item()
			if err != nil {
				app.logger.Warn("skipping invalid discovery item",
					slog.Int("line", lineNo),
					slog.String("error", err.Error()))
				continue
			}
			items = append(items, item)
		}
		if len(items) == 0 {
			continue
		}

		if err := app.emitter.EmitEvent(ctx, events.NewBatchEvent(items)); err != nil {
			app.logger.Error("discovery event failed",
				slog.Int("line", lineNo),
				slog.String("error", err.Error()))
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read discovery input: %w", err)
	}

	app.logger.Info("discovery stream ended", slog.Int("lines", lineNo))
	return nil
}

// decodeLine parses one discovery line as either a record array or a
// single record.
func decodeLine(line []byte) ([]discoveryRecord, error) {
	if line[0] == '[' {
		var records []discoveryRecord
		if err := json.Unmarshal(line, &records); err != nil {
			return nil, err
		}
		return records, nil
	}

	var record discoveryRecord
	if err := json.Unmarshal(line, &record); err != nil {
		return nil, err
	}
	return []discoveryRecord{record}, nil
}
