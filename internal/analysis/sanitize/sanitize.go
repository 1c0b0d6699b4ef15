// Package sanitize rewrites role-inappropriate phrasing out of analysis
// output.  Claimant-facing trees must never carry defendant-tactic
// language; defendant trees pass through untouched.
package sanitize

import (
	"strings"

	"github.com/casefort/LitIntel/internal/analysis/rules"
	"github.com/casefort/LitIntel/internal/domain/insight"
	"github.com/casefort/LitIntel/internal/domain/litigation"
)

// Analysis rewrites every narrative string in the analysis in place when
// the resolved role is claimant.  Other roles are returned unchanged.
func Analysis(role litigation.CaseRole, tbl *rules.Table, a *insight.Analysis) {
	if role != litigation.RoleClaimant || a == nil {
		return
	}
	a.RewriteText(func(s string) string { return Text(tbl, s) })
}

// Tree recursively sanitizes an arbitrary tree of maps, slices, and
// primitives, returning the rewritten tree.  Non-string primitives pass
// through untouched.  Used for loosely-typed payloads headed to external
// consumers.
func Tree(role litigation.CaseRole, tbl *rules.Table, v interface{}) interface{} {
	if role != litigation.RoleClaimant {
		return v
	}
	return walk(tbl, v)
}

func walk(tbl *rules.Table, v interface{}) interface{} {
	switch t := v.(type) {
	case string:
		return Text(tbl, t)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = walk(tbl, val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = walk(tbl, val)
		}
		return out
	case []string:
		out := make([]string, len(t))
		for i, s := range t {
			out[i] = Text(tbl, s)
		}
		return out
	default:
		return v
	}
}

// Text applies the substitution rules to one string.  Rules are ordered
// most specific first (the table normalizer guarantees it) and matching is
// case-insensitive, so "Part 36 Offer" and "part 36 offer" rewrite alike.
func Text(tbl *rules.Table, s string) string {
	if s == "" {
		return s
	}
	for _, sub := range tbl.Sanitize {
		s = replaceFold(s, sub.From, sub.To)
	}
	return s
}

// replaceFold replaces every case-insensitive occurrence of from with to.
func replaceFold(s, from, to string) string {
	if from == "" {
		return s
	}
	lowerS := strings.ToLower(s)
	lowerFrom := strings.ToLower(from)

	var sb strings.Builder
	start := 0
	for {
		i := strings.Index(lowerS[start:], lowerFrom)
		if i < 0 {
			sb.WriteString(s[start:])
			return sb.String()
		}
		i += start
		sb.WriteString(s[start:i])
		sb.WriteString(to)
		start = i + len(from)
	}
}
