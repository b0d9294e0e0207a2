// Package cardfields derives the short labels printed on a card: the
// position code, role abbreviation, initials, company badge letter and
// rating tier. Every function is total and deterministic.
package cardfields

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

type rule struct {
	pattern *regexp.Regexp
	code    string
}

func rules(pairs ...string) []rule {
	out := make([]rule, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, rule{pattern: regexp.MustCompile(pairs[i]), code: pairs[i+1]})
	}
	return out
}

// Table order is significant: the first matching pattern wins.
var positionRules = rules(
	`ceo|founder|chief|president|owner`, "GK",
	`director|vp|head`, "CB",
	`manager|lead|principal`, "CDM",
	`design|ux|ui|creative`, "CAM",
	`data|analy|research|scien`, "CM",
	`engineer|develop|program|software`, "CM",
	`market|growth|brand`, "RW",
	`sales|business dev|account`, "ST",
	`consult|advis`, "CF",
	`product`, "AM",
)

var roleRules = rules(
	`\bceo\b`, "CEO",
	`\bcto\b`, "CTO",
	`\bcfo\b`, "CFO",
	`\bcoo\b`, "COO",
	`\bcmo\b`, "CMO",
	`\bcio\b`, "CIO",
	`founder`, "FDR",
	`\bvp\b|vice president`, "VP",
	`director`, "DIR",
	`product`, "PM",
	`frontend|front.end`, "FE",
	`backend|back.end`, "BE",
	`fullstack|full.stack`, "FS",
	`devops|sre|reliability`, "OPS",
	`architect`, "ARC",
	`software|swe\b|develop|program|engineer`, "SWE",
	`data scien`, "DS",
	`data analy`, "DA",
	`data engineer`, "DE",
	`machine learn|ml\b|ai\b`, "ML",
	`data`, "DA",
	`analy`, "ANL",
	`research`, "RES",
	`design|ux|ui|creative`, "DES",
	`market|growth|brand`, "MKT",
	`content`, "CTN",
	`sales`, "SLS",
	`business dev`, "BDV",
	`account`, "AM",
	`consult|advis`, "CON",
	`human|people|hr\b|talent|recruit`, "HR",
	`financ|accounting`, "FIN",
	`operat`, "OPS",
	`manager|lead|principal|\bhead\b`, "MGR",
	`legal|counsel|attorney`, "LGL",
	`professor|teacher|instructor|education`, "EDU",
)

const (
	// DefaultPosition is used when no position rule matches.
	DefaultPosition = "CM"
	// DefaultRoleAbbrev is used when no role rule matches.
	DefaultRoleAbbrev = "PRO"
)

func match(table []rule, role, fallback string) string {
	lower := strings.ToLower(role)
	for _, r := range table {
		if r.pattern.MatchString(lower) {
			return r.code
		}
	}
	return fallback
}

// Position maps a job title to the football position shown on the rendered
// card, e.g. "VP Engineering" -> "CB".
func Position(role string) string {
	return match(positionRules, role, DefaultPosition)
}

// RoleAbbrev maps a job title to a professional abbreviation, e.g.
// "Senior Product Manager" -> "PM".
func RoleAbbrev(role string) string {
	return match(roleRules, role, DefaultRoleAbbrev)
}

// Initials returns the upper-cased first letters of the first two
// space-separated words of name.
func Initials(name string) string {
	var sb strings.Builder
	n := 0
	for _, word := range strings.Split(name, " ") {
		if word == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(word)
		sb.WriteRune(unicode.ToUpper(r))
		n++
		if n == 2 {
			break
		}
	}
	return sb.String()
}

// CompanyInitial returns the upper-cased first letter of the trimmed company
// name, or "?" when it is empty.
func CompanyInitial(company string) string {
	trimmed := strings.TrimSpace(company)
	if trimmed == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(trimmed)
	return string(unicode.ToUpper(r))
}
