package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/zlobste/addrmask/mask"
)

// ErrInvalidScript wraps every problem found while checking a replay script.
var ErrInvalidScript = errors.New("addrmask: invalid replay script")

type script struct {
	Sessions []sessionSpec `yaml:"sessions"`
}

type sessionSpec struct {
	Name   string     `yaml:"name"`
	Family string     `yaml:"family"`
	Steps  []stepSpec `yaml:"steps"`
}

// stepSpec holds exactly one edit action.
type stepSpec struct {
	Type      *string `yaml:"type,omitempty"`
	Paste     *string `yaml:"paste,omitempty"`
	Select    []int   `yaml:"select,omitempty"`
	Cursor    *int    `yaml:"cursor,omitempty"`
	Backspace int     `yaml:"backspace,omitempty"`
	Delete    int     `yaml:"delete,omitempty"`
}

func (s stepSpec) actions() int {
	n := 0
	for _, set := range []bool{s.Type != nil, s.Paste != nil, s.Select != nil, s.Cursor != nil, s.Backspace != 0, s.Delete != 0} {
		if set {
			n++
		}
	}
	return n
}

func loadScript(r io.Reader) (*script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var s script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidScript)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if err := s.check(); err != nil {
		return nil, err
	}
	return &s, nil
}

// check reports every structural problem in the script at once.
func (s *script) check() error {
	var err error
	if len(s.Sessions) == 0 {
		err = multierr.Append(err, fmt.Errorf("%w: no sessions", ErrInvalidScript))
	}
	for i, sess := range s.Sessions {
		if _, ferr := mask.ParseFamily(sess.Family); ferr != nil {
			err = multierr.Append(err, fmt.Errorf("%w: session %d: %v", ErrInvalidScript, i, ferr))
		}
		for j, st := range sess.Steps {
			switch {
			case st.actions() != 1:
				err = multierr.Append(err, fmt.Errorf("%w: session %d step %d: expected exactly one action", ErrInvalidScript, i, j))
			case st.Select != nil && len(st.Select) != 2:
				err = multierr.Append(err, fmt.Errorf("%w: session %d step %d: select needs [start, end]", ErrInvalidScript, i, j))
			case st.Backspace < 0 || st.Delete < 0:
				err = multierr.Append(err, fmt.Errorf("%w: session %d step %d: negative repeat count", ErrInvalidScript, i, j))
			}
		}
	}
	return err
}

func runSession(spec sessionSpec) (sessionResult, error) {
	fam, h, err := handlerFor(spec.Family)
	if err != nil {
		return sessionResult{}, err
	}
	rec := newRecorder(spec.Name, fam, h)
	for j, st := range spec.Steps {
		var serr error
		switch {
		case st.Type != nil:
			rec.typeKeys(*st.Type)
		case st.Paste != nil:
			rec.paste(*st.Paste)
		case st.Select != nil:
			serr = rec.selectRange(st.Select[0], st.Select[1])
		case st.Cursor != nil:
			serr = rec.selectRange(*st.Cursor, *st.Cursor)
		case st.Backspace > 0:
			rec.backspace(st.Backspace)
		case st.Delete > 0:
			rec.delete(st.Delete)
		}
		if serr != nil {
			return sessionResult{}, fmt.Errorf("session %q step %d: %w", spec.Name, j, serr)
		}
	}
	return rec.result(spec.Name, fam), nil
}

var replayCmd = &cobra.Command{
	Use:   "replay <script.yaml>",
	Short: "Replay scripted editing sessions against masked fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}
		s, err := loadScript(in)
		if err != nil {
			return err
		}
		results := make([]sessionResult, 0, len(s.Sessions))
		for _, spec := range s.Sessions {
			res, err := runSession(spec)
			if err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{"session": spec.Name, "value": res.Value, "valid": res.Valid}).Info("Session replayed")
			results = append(results, res)
		}
		if format == outHuman {
			for _, res := range results {
				if err := render(res); err != nil {
					return err
				}
			}
			return nil
		}
		return render(results)
	},
}
