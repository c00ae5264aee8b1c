package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rwejlgaard/timesheet/internal/model"
	"gopkg.in/yaml.v3"
)

// YAML writes one <date>-<worker>.yaml document per submission into a
// directory. Resubmitting the same worker and day replaces the file.
type YAML struct {
	dir string
}

// NewYAML returns a sink writing into dir, creating it if needed
func NewYAML(dir string) (*YAML, error) {
	if dir == "" {
		return nil, fmt.Errorf("yaml sink: output directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &YAML{dir: dir}, nil
}

// Path returns the file a payload is written to
func (s *YAML) Path(p model.Payload) string {
	return filepath.Join(s.dir, fileBase(p)+".yaml")
}

func (s *YAML) Submit(ctx context.Context, p model.Payload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal payload yaml: %w", err)
	}
	if err := os.WriteFile(s.Path(p), data, 0o644); err != nil {
		return fmt.Errorf("write payload yaml: %w", err)
	}
	return nil
}
