package triage

import (
	"sort"
	"strings"

	"github.com/spec-kit/grievance-service/internal/domain"
)

// KeywordMatcher is the deterministic rule-based classifier used when no
// trained model is available. It never fails: zero keyword hits route to the
// catch-all department.
type KeywordMatcher struct {
	rules      []keywordRule
	defaultID  string
	defaultNm  string
	wholeWords bool
}

type keywordRule struct {
	id       string
	name     string
	keywords []string
}

// MatchResult is the outcome of a keyword match.
type MatchResult struct {
	DepartmentID   string
	DepartmentName string
	Hits           int
}

// NewKeywordMatcher builds a matcher over the active departments. Rules are
// ordered by department id so tie-breaks never depend on input ordering.
func NewKeywordMatcher(departments []domain.Department, wholeWords bool) *KeywordMatcher {
	m := &KeywordMatcher{wholeWords: wholeWords}
	for _, dept := range departments {
		if !dept.IsActive {
			continue
		}
		if dept.IsDefault {
			m.defaultID = dept.ID
			m.defaultNm = dept.Name
		}
		keywords := make([]string, 0, len(dept.Keywords))
		for _, kw := range dept.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				keywords = append(keywords, kw)
			}
		}
		m.rules = append(m.rules, keywordRule{id: dept.ID, name: dept.Name, keywords: keywords})
	}
	sort.Slice(m.rules, func(i, j int) bool { return m.rules[i].id < m.rules[j].id })

	// A catch-all must always exist; if seeding failed to flag one, the
	// lowest-id department stands in so the matcher still cannot fail.
	if m.defaultID == "" && len(m.rules) > 0 {
		m.defaultID = m.rules[0].id
		m.defaultNm = m.rules[0].name
	}
	return m
}

// Match classifies the text. Tie-break: most distinct keyword hits wins,
// then lowest department id; zero hits yield the default department.
func (m *KeywordMatcher) Match(text string) MatchResult {
	lowered := strings.ToLower(text)
	var words map[string]struct{}
	if m.wholeWords {
		words = make(map[string]struct{})
		for _, token := range Tokenize(text) {
			words[token] = struct{}{}
		}
	}

	best := MatchResult{DepartmentID: m.defaultID, DepartmentName: m.defaultNm}
	for _, rule := range m.rules {
		hits := 0
		for _, kw := range rule.keywords {
			if m.contains(lowered, words, kw) {
				hits++
			}
		}
		// Strict comparison keeps the lowest id on ties.
		if hits > 0 && hits > best.Hits {
			best = MatchResult{DepartmentID: rule.id, DepartmentName: rule.name, Hits: hits}
		}
	}
	return best
}

func (m *KeywordMatcher) contains(lowered string, words map[string]struct{}, keyword string) bool {
	if m.wholeWords {
		_, ok := words[keyword]
		return ok
	}
	return strings.Contains(lowered, keyword)
}
