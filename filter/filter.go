// Package filter narrows torrent listings with expr-lang expressions.
//
// Expressions see the torrent's fields directly and a handful of helpers:
//
//	Name, Hash, Progress, Ratio, Size, State, Added, Complete
//	contains(s, sub), startsWith(s, p), endsWith(s, p), lower(s), upper(s)
//	daysSince(t), daysAgo(n), now(), parseDate("2006-01-02"), gb(n)
//
// State is the short code shown by torrent list, e.g. `State == "PausedUP"`.
package filter

import (
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/qbtctl/qbittorrent"
)

// Filter is a compiled torrent filter.
type Filter struct {
	program    *vm.Program
	expression string
}

func helpers() map[string]any {
	return map[string]any{
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"endsWith": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		"daysSince": func(t time.Time) int {
			return int(time.Since(t).Hours() / 24)
		},
		"daysAgo": func(days int) time.Time {
			return time.Now().AddDate(0, 0, -days)
		},
		"parseDate": func(dateStr string) time.Time {
			t, _ := time.Parse("2006-01-02", dateStr)
			return t
		},
		"gb": func(n int) int64 {
			return int64(n) * 1_000_000_000
		},
		"now": time.Now,
	}
}

func environment(t qbittorrent.Torrent) map[string]any {
	env := helpers()
	env["Name"] = t.Name
	env["Hash"] = t.Hash
	env["Progress"] = t.Progress
	env["Ratio"] = t.Ratio
	env["Size"] = t.Size
	env["State"] = t.State.Code()
	env["Added"] = t.AddedOn
	env["Complete"] = t.IsComplete()
	return env
}

// Compile compiles expression. The result must be a boolean.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(environment(qbittorrent.Torrent{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return &Filter{
		program:    program,
		expression: expression,
	}, nil
}

// Match reports whether t satisfies the filter.
func (f *Filter) Match(t qbittorrent.Torrent) (bool, error) {
	result, err := expr.Run(f.program, environment(t))
	if err != nil {
		return false, &EvaluationError{Expression: f.expression, Hash: t.Hash, Err: err}
	}
	matched, _ := result.(bool)
	return matched, nil
}

// Apply returns the torrents matching the filter, keeping their order.
func (f *Filter) Apply(torrents []qbittorrent.Torrent) ([]qbittorrent.Torrent, error) {
	out := make([]qbittorrent.Torrent, 0, len(torrents))
	for _, t := range torrents {
		ok, err := f.Match(t)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, t)
		}
	}
	return out, nil
}

// String returns the original expression
func (f *Filter) String() string {
	return f.expression
}
