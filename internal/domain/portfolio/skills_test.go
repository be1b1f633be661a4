package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestSkills(t *testing.T) {
	t.Run("substring match is case-insensitive", func(t *testing.T) {
		got := SuggestSkills("rea", nil)
		assert.Contains(t, got, "React")
		assert.Contains(t, got, "React Native")
	})

	t.Run("already added skills are excluded", func(t *testing.T) {
		existing := []Skill{{Name: "react", Experience: "1-2"}}
		got := SuggestSkills("rea", existing)
		assert.NotContains(t, got, "React")
		assert.Contains(t, got, "React Native")
	})

	t.Run("empty query yields nothing", func(t *testing.T) {
		assert.Empty(t, SuggestSkills("", nil))
		assert.Empty(t, SuggestSkills("   ", nil))
	})

	t.Run("no match yields nothing", func(t *testing.T) {
		assert.Empty(t, SuggestSkills("zzzzzzz", nil))
	})
}

func TestValidExperience(t *testing.T) {
	for _, b := range ExperienceBrackets {
		assert.True(t, ValidExperience(b))
	}
	assert.False(t, ValidExperience("10+"))
	assert.False(t, ValidExperience(""))
}
