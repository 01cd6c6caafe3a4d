// Package values provides a small starter set of leaf Parser
// implementations for cmdtree argument and flag components: string, int,
// float, bool, duration and an enumerated choice. Each type implements both
// cmdtree.Parser[T] and pflag.Value, so the same instance can back a
// cmdtree component and be handed to a *pflag.FlagSet when a host bridges
// cmdtree into a cobra/pflag-rooted CLI.
package values

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/kingfisher-cli/cmdtree"
)

func asFailure(err error, kind cmdtree.Kind, message string) *cmdtree.Failure {
	if f, ok := err.(*cmdtree.Failure); ok {
		return f
	}

	return &cmdtree.Failure{Kind: kind, Message: message, Err: err}
}

// StringParser is the identity parser: one token, taken verbatim.
type StringParser struct {
	val string
}

// NewString returns a StringParser seeded with def as its pflag.Value
// zero-state.
func NewString(def string) *StringParser {
	return &StringParser{val: def}
}

func (p *StringParser) Parse(_ *cmdtree.Context, cur *cmdtree.Cursor) (string, *cmdtree.Failure) {
	tok, err := cur.ReadString()
	if err != nil {
		return "", asFailure(err, cmdtree.ErrArgumentParse, "expected a string token")
	}

	return tok, nil
}

func (p *StringParser) Suggest(_ *cmdtree.Context, _ string) []string { return nil }

func (p *StringParser) String() string { return p.val }

func (p *StringParser) Set(s string) error {
	p.val = s

	return nil
}

func (p *StringParser) Type() string { return "string" }

var _ pflag.Value = (*StringParser)(nil)
var _ cmdtree.Parser[string] = (*StringParser)(nil)

// IntParser reads one base-10 integer token.
type IntParser struct {
	val int
}

// NewInt returns an IntParser seeded with def.
func NewInt(def int) *IntParser {
	return &IntParser{val: def}
}

func (p *IntParser) Parse(_ *cmdtree.Context, cur *cmdtree.Cursor) (int, *cmdtree.Failure) {
	n, err := cur.ReadInteger(10)
	if err != nil {
		return 0, asFailure(err, cmdtree.ErrArgumentParse, "expected an integer")
	}

	return int(n), nil
}

func (p *IntParser) Suggest(_ *cmdtree.Context, _ string) []string { return nil }

func (p *IntParser) String() string { return strconv.Itoa(p.val) }

func (p *IntParser) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}

	p.val = n

	return nil
}

func (p *IntParser) Type() string { return "int" }

var _ pflag.Value = (*IntParser)(nil)
var _ cmdtree.Parser[int] = (*IntParser)(nil)

// FloatParser reads one 64-bit floating point token.
type FloatParser struct {
	val float64
}

// NewFloat returns a FloatParser seeded with def.
func NewFloat(def float64) *FloatParser {
	return &FloatParser{val: def}
}

func (p *FloatParser) Parse(_ *cmdtree.Context, cur *cmdtree.Cursor) (float64, *cmdtree.Failure) {
	f, err := cur.ReadFloat()
	if err != nil {
		return 0, asFailure(err, cmdtree.ErrArgumentParse, "expected a floating-point number")
	}

	return f, nil
}

func (p *FloatParser) Suggest(_ *cmdtree.Context, _ string) []string { return nil }

func (p *FloatParser) String() string { return strconv.FormatFloat(p.val, 'g', -1, 64) }

func (p *FloatParser) Set(s string) error {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}

	p.val = f

	return nil
}

func (p *FloatParser) Type() string { return "float64" }

var _ pflag.Value = (*FloatParser)(nil)
var _ cmdtree.Parser[float64] = (*FloatParser)(nil)

// BoolParser reads one token as a boolean ("true"/"false"/"1"/"0"/...),
// per strconv.ParseBool. Typically paired with cmdtree.Optional so a bare
// presence flag still has a sane default.
type BoolParser struct {
	val bool
}

// NewBool returns a BoolParser seeded with def.
func NewBool(def bool) *BoolParser {
	return &BoolParser{val: def}
}

func (p *BoolParser) Parse(_ *cmdtree.Context, cur *cmdtree.Cursor) (bool, *cmdtree.Failure) {
	tok, err := cur.ReadString()
	if err != nil {
		return false, asFailure(err, cmdtree.ErrArgumentParse, "expected a boolean")
	}

	b, parseErr := strconv.ParseBool(tok)
	if parseErr != nil {
		return false, &cmdtree.Failure{Kind: cmdtree.ErrArgumentParse, Message: "not a boolean: " + tok, Err: parseErr}
	}

	return b, nil
}

func (p *BoolParser) Suggest(_ *cmdtree.Context, partial string) []string {
	return prefixFilter([]string{"true", "false"}, partial)
}

func (p *BoolParser) String() string { return strconv.FormatBool(p.val) }

func (p *BoolParser) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}

	p.val = b

	return nil
}

func (p *BoolParser) Type() string { return "bool" }

var _ pflag.Value = (*BoolParser)(nil)
var _ cmdtree.Parser[bool] = (*BoolParser)(nil)

// DurationParser reads one token via time.ParseDuration.
type DurationParser struct {
	val time.Duration
}

// NewDuration returns a DurationParser seeded with def.
func NewDuration(def time.Duration) *DurationParser {
	return &DurationParser{val: def}
}

func (p *DurationParser) Parse(_ *cmdtree.Context, cur *cmdtree.Cursor) (time.Duration, *cmdtree.Failure) {
	tok, err := cur.ReadString()
	if err != nil {
		return 0, asFailure(err, cmdtree.ErrArgumentParse, "expected a duration")
	}

	d, parseErr := time.ParseDuration(tok)
	if parseErr != nil {
		return 0, &cmdtree.Failure{Kind: cmdtree.ErrArgumentParse, Message: "not a duration: " + tok, Err: parseErr}
	}

	return d, nil
}

func (p *DurationParser) Suggest(_ *cmdtree.Context, _ string) []string { return nil }

func (p *DurationParser) String() string { return p.val.String() }

func (p *DurationParser) Set(s string) error {
	d, err := time.ParseDuration(s)
	if err != nil {
		return err
	}

	p.val = d

	return nil
}

func (p *DurationParser) Type() string { return "duration" }

var _ pflag.Value = (*DurationParser)(nil)
var _ cmdtree.Parser[time.Duration] = (*DurationParser)(nil)

// ChoiceParser accepts one token from a fixed, ordered set of allowed
// values, matched case-sensitively.
type ChoiceParser struct {
	allowed []string
	val     string
}

// NewChoice returns a ChoiceParser restricted to allowed, seeded with def
// (which need not itself be a member of allowed — that is only enforced on
// Parse/Set).
func NewChoice(def string, allowed ...string) *ChoiceParser {
	return &ChoiceParser{allowed: allowed, val: def}
}

func (p *ChoiceParser) Parse(_ *cmdtree.Context, cur *cmdtree.Cursor) (string, *cmdtree.Failure) {
	tok, err := cur.ReadString()
	if err != nil {
		return "", asFailure(err, cmdtree.ErrArgumentParse, "expected one of "+strings.Join(p.allowed, ", "))
	}

	for _, a := range p.allowed {
		if a == tok {
			return tok, nil
		}
	}

	return "", &cmdtree.Failure{
		Kind:    cmdtree.ErrArgumentParse,
		Message: tok + " is not one of " + strings.Join(p.allowed, ", "),
	}
}

func (p *ChoiceParser) Suggest(_ *cmdtree.Context, partial string) []string {
	return prefixFilter(p.allowed, partial)
}

func (p *ChoiceParser) String() string { return p.val }

func (p *ChoiceParser) Set(s string) error {
	for _, a := range p.allowed {
		if a == s {
			p.val = s

			return nil
		}
	}

	return &cmdtree.Failure{Kind: cmdtree.ErrArgumentParse, Message: s + " is not one of " + strings.Join(p.allowed, ", ")}
}

func (p *ChoiceParser) Type() string { return "choice" }

var _ pflag.Value = (*ChoiceParser)(nil)
var _ cmdtree.Parser[string] = (*ChoiceParser)(nil)

func prefixFilter(candidates []string, partial string) []string {
	var out []string

	for _, c := range candidates {
		if strings.HasPrefix(c, partial) {
			out = append(out, c)
		}
	}

	return out
}

// RegisterDefaults installs factories for "string", "int", "float", "bool",
// "duration" into r, so a Builder can declare components by value-type tag
// (cmdtree's registry/RequiredByType, spec §4.7) instead of constructing a
// parser directly.
func RegisterDefaults(r *cmdtree.Registry) {
	cmdtree.RegisterParser[string](r, "string", func(map[string]string) (cmdtree.Parser[string], error) {
		return NewString(""), nil
	})
	cmdtree.RegisterParser[int](r, "int", func(map[string]string) (cmdtree.Parser[int], error) {
		return NewInt(0), nil
	})
	cmdtree.RegisterParser[float64](r, "float", func(map[string]string) (cmdtree.Parser[float64], error) {
		return NewFloat(0), nil
	})
	cmdtree.RegisterParser[bool](r, "bool", func(map[string]string) (cmdtree.Parser[bool], error) {
		return NewBool(false), nil
	})
	cmdtree.RegisterParser[time.Duration](r, "duration", func(map[string]string) (cmdtree.Parser[time.Duration], error) {
		return NewDuration(0), nil
	})
}

// BindFlagSet registers v under name (and, if short != 0, its single-rune
// shorthand) on fs, for a host bridging a cmdtree-backed flag value into a
// cobra/pflag command's own flag set.
func BindFlagSet(fs *pflag.FlagSet, v pflag.Value, name string, short rune, usage string) {
	if short == 0 {
		fs.Var(v, name, usage)

		return
	}

	fs.VarP(v, name, string(short), usage)
}
