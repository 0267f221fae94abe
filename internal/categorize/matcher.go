// Package categorize picks a category for an imported transaction from its
// description.
//
// Matching is greedy and first-hit: existing category names are tried
// before the keyword rules, and both are scanned in slice order, so the
// result is deterministic for a given input order.
package categorize

import (
	"strings"

	"github.com/payra-dev/payra/internal/model"
)

// Rule maps a lower-case keyword to a canonical category name.
type Rule struct {
	Keyword  string `yaml:"keyword"`
	Category string `yaml:"category"`
}

// DefaultRules is the built-in keyword table, in match order.
var DefaultRules = []Rule{
	{"restaurant", "Food & Dining"},
	{"cafe", "Food & Dining"},
	{"coffee", "Food & Dining"},
	{"uber", "Transportation"},
	{"lyft", "Transportation"},
	{"gas", "Transportation"},
	{"amazon", "Shopping"},
	{"walmart", "Shopping"},
	{"target", "Shopping"},
	{"netflix", "Entertainment"},
	{"spotify", "Entertainment"},
	{"doctor", "Healthcare"},
	{"pharmacy", "Healthcare"},
	{"electric", "Utilities"},
	{"water", "Utilities"},
	{"rent", "Housing"},
	{"mortgage", "Housing"},
}

// Matcher resolves descriptions to categories.
type Matcher struct {
	rules []Rule
}

// New returns a Matcher using rules, or DefaultRules when rules is empty.
// Keywords are lower-cased; rules with an empty keyword are dropped.
func New(rules []Rule) *Matcher {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	m := &Matcher{rules: make([]Rule, 0, len(rules))}
	for _, r := range rules {
		kw := strings.ToLower(strings.TrimSpace(r.Keyword))
		if kw == "" {
			continue
		}
		m.rules = append(m.rules, Rule{Keyword: kw, Category: r.Category})
	}
	return m
}

// Rules returns the normalized rule list.
func (m *Matcher) Rules() []Rule {
	return m.rules
}

// Match returns the best-fit category for description among categories.
//
// A category whose lower-cased name occurs in the lower-cased description
// wins first. Otherwise the first keyword rule found in the description
// names the category, which must exist among categories with exactly that
// name; if it does not, there is no match even though a keyword hit.
func (m *Matcher) Match(description string, categories []model.Category) (model.Category, bool) {
	desc := strings.ToLower(description)

	for _, c := range categories {
		name := strings.ToLower(c.Name)
		if name != "" && strings.Contains(desc, name) {
			return c, true
		}
	}

	for _, r := range m.rules {
		if !strings.Contains(desc, r.Keyword) {
			continue
		}
		for _, c := range categories {
			if c.Name == r.Category {
				return c, true
			}
		}
		return model.Category{}, false
	}

	return model.Category{}, false
}
