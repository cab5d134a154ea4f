package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsPatternEscapesWildcards(t *testing.T) {
	cases := map[string]string{
		"school":      `%school%`,
		"%":           `%\%%`,
		"_":           `%\_%`,
		`\`:           `%\\%`,
		"100% funded": `%100\% funded%`,
		"snake_case":  `%snake\_case%`,
		`a\%b`:        `%a\\\%b%`,
		"":            `%%`,
	}
	for q, want := range cases {
		assert.Equal(t, want, containsPattern(q), "query %q", q)
	}
}
