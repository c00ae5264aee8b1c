// Package sink implements the places a submitted timesheet can be handed
// off to. Every sink satisfies model.Submitter.
package sink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/rwejlgaard/timesheet/internal/model"
)

// Kinds accepted by New
const (
	KindStdout = "stdout"
	KindYAML   = "yaml"
	KindXLSX   = "xlsx"
	KindNone   = "none"
)

// ParseKinds splits a comma-separated kind list such as "stdout,yaml".
// An empty list means stdout.
func ParseKinds(list string) ([]string, error) {
	if strings.TrimSpace(list) == "" {
		return []string{KindStdout}, nil
	}
	var kinds []string
	seen := make(map[string]bool)
	for _, kind := range strings.Split(list, ",") {
		kind = strings.TrimSpace(kind)
		switch kind {
		case KindStdout, KindYAML, KindXLSX, KindNone:
		default:
			return nil, fmt.Errorf("unknown sink kind: %q", kind)
		}
		if seen[kind] {
			return nil, fmt.Errorf("duplicate sink kind: %q", kind)
		}
		seen[kind] = true
		kinds = append(kinds, kind)
	}
	if seen[KindNone] && len(kinds) > 1 {
		return nil, errors.New("sink kind \"none\" cannot be combined with other kinds")
	}
	return kinds, nil
}

// NeedsDir reports whether any kind in the list writes files
func NeedsDir(kinds []string) bool {
	for _, kind := range kinds {
		if kind == KindYAML || kind == KindXLSX {
			return true
		}
	}
	return false
}

// New builds the sinks named by the comma-separated kind list. dir is the
// output directory for file sinks; stdout is where the JSON sink writes.
// More than one kind yields a Multi.
func New(kind, dir string, stdout io.Writer) (model.Submitter, error) {
	kinds, err := ParseKinds(kind)
	if err != nil {
		return nil, err
	}

	sinks := make(Multi, 0, len(kinds))
	for _, k := range kinds {
		s, err := newSingle(k, dir, stdout)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s)
	}
	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return sinks, nil
}

func newSingle(kind, dir string, stdout io.Writer) (model.Submitter, error) {
	switch kind {
	case KindYAML:
		return NewYAML(dir)
	case KindXLSX:
		return NewXLSX(dir)
	case KindNone:
		return Discard{}, nil
	}
	return NewJSON(stdout), nil
}

// Discard accepts every payload and does nothing with it
type Discard struct{}

func (Discard) Submit(ctx context.Context, _ model.Payload) error {
	return ctx.Err()
}

// Multi fans a payload out to every sink in order. All sinks are tried;
// their errors are joined.
type Multi []model.Submitter

func (m Multi) Submit(ctx context.Context, p model.Payload) error {
	var errs []error
	for _, s := range m {
		if err := s.Submit(ctx, p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var unsafeFileChars = regexp.MustCompile(`[^a-z0-9]+`)

// fileBase names the output file for a payload: <date>-<worker>
func fileBase(p model.Payload) string {
	worker := strings.Trim(unsafeFileChars.ReplaceAllString(strings.ToLower(p.WorkerName), "-"), "-")
	if worker == "" {
		worker = "unknown"
	}
	return p.Date + "-" + worker
}
