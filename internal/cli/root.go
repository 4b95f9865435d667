package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zlobste/addrmask/mask"
)

type outputFormat string

const (
	outHuman outputFormat = "human"
	outJSON  outputFormat = "json"
	outYAML  outputFormat = "yaml"
)

// ErrInvalidValue is returned by validate --strict for incomplete addresses.
var ErrInvalidValue = errors.New("addrmask: value is not a valid address")

var rootCmd = &cobra.Command{
	Use:   "addrmask",
	Short: "Input masking for IPv4, IPv6 and MAC addresses",
	Long:  "addrmask formats, validates and filters keystrokes for IPv4, IPv6 and MAC address input fields.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd)
	},
	SilenceUsage: true,
}

var (
	format    outputFormat
	verbose   bool
	logFormat string
)

// Execute runs the root command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP((*string)(&format), "output", "o", string(outHuman), "output format: human|json|yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every keystroke decision")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text|json")
	rootCmd.AddCommand(familiesCmd)
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(acceptCmd)
	rootCmd.AddCommand(cursorCmd)
	rootCmd.AddCommand(typeCmd)
	rootCmd.AddCommand(replayCmd)
}

func setupLogging(cmd *cobra.Command) error {
	logrus.SetOutput(cmd.ErrOrStderr())
	logrus.SetLevel(logrus.InfoLevel)
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	switch logFormat {
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q", logFormat)
	}
	return nil
}

func render(v any) error {
	w := rootCmd.OutOrStdout()
	switch format {
	case outHuman:
		fmt.Fprintln(w, v)
	case outJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return errors.New("unknown output format")
	}
	return nil
}

func handlerFor(name string) (mask.Family, mask.Handler, error) {
	fam, err := mask.ParseFamily(name)
	if err != nil {
		return "", nil, err
	}
	h, err := mask.Lookup(fam)
	return fam, h, err
}

// ---- Results ----

type formatResult struct {
	Family string `json:"family" yaml:"family"`
	Input  string `json:"input" yaml:"input"`
	Value  string `json:"value" yaml:"value"`
}

func (r formatResult) String() string { return r.Value }

type validateResult struct {
	Family string `json:"family" yaml:"family"`
	Value  string `json:"value" yaml:"value"`
	Valid  bool   `json:"valid" yaml:"valid"`
}

func (r validateResult) String() string {
	if r.Valid {
		return fmt.Sprintf("%s: valid %s address", r.Value, r.Family)
	}
	return fmt.Sprintf("%s: not a valid %s address", r.Value, r.Family)
}

type acceptResult struct {
	Family       string `json:"family" yaml:"family"`
	Char         string `json:"char" yaml:"char"`
	Value        string `json:"value" yaml:"value"`
	Cursor       int    `json:"cursor" yaml:"cursor"`
	SelectionEnd int    `json:"selection_end" yaml:"selection_end"`
	Accepted     bool   `json:"accepted" yaml:"accepted"`
}

func (r acceptResult) String() string {
	verdict := "rejected"
	if r.Accepted {
		verdict = "accepted"
	}
	return fmt.Sprintf("%q at %d in %q: %s", r.Char, r.Cursor, r.Value, verdict)
}

// ---- Commands ----

var familiesCmd = &cobra.Command{
	Use:   "families",
	Short: "List supported address families",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fams := mask.Families()
		list := make([]string, len(fams))
		for i, f := range fams {
			list[i] = f.String()
		}
		if format == outHuman {
			return render(strings.Join(list, "\n"))
		}
		return render(list)
	},
}

var formatCmd = &cobra.Command{
	Use:   "format <family> <raw>",
	Short: "Apply the family's input mask to raw text",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fam, h, err := handlerFor(args[0])
		if err != nil {
			return err
		}
		return render(formatResult{Family: fam.String(), Input: args[1], Value: h.Format(args[1])})
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <family> <value>",
	Short: "Check whether a value is a complete address",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fam, h, err := handlerFor(args[0])
		if err != nil {
			return err
		}
		res := validateResult{Family: fam.String(), Value: args[1], Valid: h.Validate(args[1])}
		if err := render(res); err != nil {
			return err
		}
		if strict, _ := cmd.Flags().GetBool("strict"); strict && !res.Valid {
			return fmt.Errorf("%w: %q", ErrInvalidValue, args[1])
		}
		return nil
	},
}

var acceptCmd = &cobra.Command{
	Use:   "accept <family> <char> <value>",
	Short: "Report whether a keystroke would be accepted",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		fam, h, err := handlerFor(args[0])
		if err != nil {
			return err
		}
		ch, size := utf8.DecodeRuneInString(args[1])
		if size == 0 || size != len(args[1]) {
			return fmt.Errorf("expected a single character, got %q", args[1])
		}
		value := args[2]
		cursor, _ := cmd.Flags().GetInt("cursor")
		if cursor < 0 {
			cursor = len(value)
		}
		end, _ := cmd.Flags().GetInt("selection-end")
		if end < cursor {
			end = cursor
		}
		res := acceptResult{
			Family:       fam.String(),
			Char:         args[1],
			Value:        value,
			Cursor:       cursor,
			SelectionEnd: end,
			Accepted:     h.IsValidChar(ch, value, cursor, end),
		}
		logrus.WithFields(logrus.Fields{"family": res.Family, "char": res.Char, "accepted": res.Accepted}).Debug("Keystroke checked")
		return render(res)
	},
}

var cursorCmd = &cobra.Command{
	Use:   "cursor <old-value> <new-value> <old-cursor>",
	Short: "Recompute the caret after a value was reformatted",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		old, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid cursor %q: %w", args[2], err)
		}
		return render(mask.NewCursor(args[0], args[1], old))
	},
}

func init() {
	validateCmd.Flags().Bool("strict", false, "exit with an error when the value is not valid")
	acceptCmd.Flags().Int("cursor", -1, "caret offset (defaults to the end of the value)")
	acceptCmd.Flags().Int("selection-end", -1, "end of the replaced selection (defaults to the caret)")
}
