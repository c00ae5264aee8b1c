package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rwejlgaard/timesheet/internal/model"
)

// JSON writes each payload as an indented JSON document
type JSON struct {
	w io.Writer
}

// NewJSON returns a sink writing to w
func NewJSON(w io.Writer) *JSON {
	return &JSON{w: w}
}

func (s *JSON) Submit(ctx context.Context, p model.Payload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := MarshalJSON(p)
	if err != nil {
		return err
	}
	if _, err := s.w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return nil
}

// MarshalJSON renders a payload the way the JSON sink writes it
func MarshalJSON(p model.Payload) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return data, nil
}
