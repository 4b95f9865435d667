package cli

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zlobste/addrmask/mask"
)

// stepResult records the field state after one edit.
type stepResult struct {
	Action   string `json:"action" yaml:"action"`
	Accepted bool   `json:"accepted" yaml:"accepted"`
	Value    string `json:"value" yaml:"value"`
	Cursor   int    `json:"cursor" yaml:"cursor"`
}

type sessionResult struct {
	Name   string       `json:"name,omitempty" yaml:"name,omitempty"`
	Family string       `json:"family" yaml:"family"`
	Steps  []stepResult `json:"steps" yaml:"steps"`
	Value  string       `json:"value" yaml:"value"`
	Valid  bool         `json:"valid" yaml:"valid"`
}

func (s sessionResult) String() string {
	var b strings.Builder
	if s.Name != "" {
		fmt.Fprintf(&b, "# %s (%s)\n", s.Name, s.Family)
	}
	for _, st := range s.Steps {
		mark := "+"
		if !st.Accepted {
			mark = "-"
		}
		fmt.Fprintf(&b, "%s %-14s %-40q cursor=%d\n", mark, st.Action, st.Value, st.Cursor)
	}
	fmt.Fprintf(&b, "value=%q valid=%t", s.Value, s.Valid)
	return b.String()
}

// recorder drives a mask.Field and logs every edit.
type recorder struct {
	field *mask.Field
	log   logrus.FieldLogger
	steps []stepResult
}

func newRecorder(name string, fam mask.Family, h mask.Handler) *recorder {
	log := logrus.WithField("family", fam.String())
	if name != "" {
		log = log.WithField("session", name)
	}
	return &recorder{field: mask.NewField(h), log: log}
}

func (r *recorder) record(action string, accepted bool) {
	st := stepResult{Action: action, Accepted: accepted, Value: r.field.Value(), Cursor: r.field.Cursor()}
	r.steps = append(r.steps, st)
	r.log.WithFields(logrus.Fields{
		"action":   st.Action,
		"accepted": st.Accepted,
		"value":    st.Value,
		"cursor":   st.Cursor,
	}).Debug("Edit applied")
}

func (r *recorder) typeKeys(keys string) {
	for _, k := range keys {
		r.record(fmt.Sprintf("type %q", k), r.field.Type(k))
	}
}

func (r *recorder) paste(text string) {
	r.field.Paste(text)
	r.record(fmt.Sprintf("paste %q", text), true)
}

func (r *recorder) selectRange(start, end int) error {
	if err := r.field.Select(start, end); err != nil {
		return err
	}
	r.record(fmt.Sprintf("select %d-%d", start, end), true)
	return nil
}

func (r *recorder) backspace(n int) {
	for i := 0; i < n; i++ {
		r.field.Backspace()
		r.record("backspace", true)
	}
}

func (r *recorder) delete(n int) {
	for i := 0; i < n; i++ {
		r.field.Delete()
		r.record("delete", true)
	}
}

func (r *recorder) result(name string, fam mask.Family) sessionResult {
	return sessionResult{
		Name:   name,
		Family: fam.String(),
		Steps:  r.steps,
		Value:  r.field.Value(),
		Valid:  r.field.Valid(),
	}
}

var typeCmd = &cobra.Command{
	Use:   "type <family> <keystrokes>",
	Short: "Simulate typing keystrokes into a masked field",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fam, h, err := handlerFor(args[0])
		if err != nil {
			return err
		}
		rec := newRecorder("", fam, h)
		rec.typeKeys(args[1])
		res := rec.result("", fam)
		logrus.WithFields(logrus.Fields{"value": res.Value, "valid": res.Valid}).Info("Typing finished")
		return render(res)
	},
}
