// Package script runs deque scenarios written in yaml against pkg/list.
//
// A script declares some named lists and a sequence of steps:
//
//	lists:
//	  a: [1, 2, 3, 4, 5, 6]
//	steps:
//	  - op: cursor
//	    list: a
//	  - op: move_next
//	  - op: splice_before
//	    from: b
//	  - op: assert
//	    expr: 'str(a) == "[7 1 2 3 4 5 6]" && index == 1'
//
// Every key of a step other than "op" is an argument of that op.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

type Script struct {
	Lists map[string][]string `yaml:"lists"`
	Steps []Step              `yaml:"steps"`
}

type Step struct {
	Op   string         `yaml:"op"`
	Args map[string]any `yaml:",inline"`
}

// Parse reads a script from r and checks that every step names a known
// op with valid args.
func Parse(r io.Reader) (*Script, error) {
	s := new(Script)
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	if err := d.Decode(s); err != nil {
		if errors.Is(err, io.EOF) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to decode script, %w", err)
	}

	for i, step := range s.Steps {
		o, ok := ops[step.Op]
		if !ok {
			return nil, fmt.Errorf("step #%d: %w %q", i, ErrUnknownOp, step.Op)
		}
		if _, err := o.decode(step.Args); err != nil {
			return nil, fmt.Errorf("step #%d (%s): %w", i, step.Op, err)
		}
	}
	return s, nil
}

// Load parses the script file at path.
func Load(path string) (*Script, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(bytes.NewReader(b))
}

// weakDecode decodes step args into the args struct of an op.
func weakDecode(in map[string]any, out any) error {
	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		Result:           out,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return d.Decode(in)
}
