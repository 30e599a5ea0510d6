package textstat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExampleSentencesWholeWord(t *testing.T) {
	got := ExampleSentences("The category is wide. The cat sat.", "cat", 0)
	assert.Equal(t, []string{"The cat sat"}, got)
}

func TestExampleSentencesOrderAndTrim(t *testing.T) {
	text := "One fish.  Two dogs run!   Three birds? Four cats... Five dogs sleep.\n Six."
	got := ExampleSentences(text, "DOGS", 0)
	assert.Equal(t, []string{"Two dogs run", "Five dogs sleep"}, got)
}

func TestExampleSentencesLimit(t *testing.T) {
	text := "a x. b x. c x. d x. e x. f x. g x."
	assert.Len(t, ExampleSentences(text, "x", DisplayExampleLimit), 5)
	assert.Equal(t, []string{"a x"}, ExampleSentences(text, "x", 1))
	assert.Len(t, ExampleSentences(text, "x", 0), 7)
}

func TestExampleSentencesNoMatch(t *testing.T) {
	got := ExampleSentences("Nothing to see here.", "cat", 3)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, ExampleSentences("", "cat", 3))
	assert.Empty(t, ExampleSentences("Some text.", "", 3))
}

func TestExampleSentencesUnicode(t *testing.T) {
	got := ExampleSentences("Котёнок спит. Кот ест!", "кот", 0)
	assert.Equal(t, []string{"Кот ест"}, got)
}

func TestExampleSentencesDigitAndUnderscoreBoundaries(t *testing.T) {
	got := ExampleSentences("cat1 is here. my_cat too. a cat is here", "cat", 0)
	assert.Equal(t, []string{"a cat is here"}, got)
}

func TestMatcherQuotesSpecialCharacters(t *testing.T) {
	m := NewMatcher("c++")
	assert.True(t, m.Match("I like C++ a lot"))
	assert.False(t, m.Match("I like c a lot"))

	dot := NewMatcher("a.b")
	assert.False(t, dot.Match("axb"))
	assert.True(t, dot.Match("see a.b here"))
}

func TestMatcherFindAll(t *testing.T) {
	got := NewMatcher("cat").FindAll("Cat, concat; CAT!")
	assert.Equal(t, []Range{{Start: 0, End: 3}, {Start: 13, End: 16}}, got)
}

func TestMatcherRetriesAfterRejectedMatch(t *testing.T) {
	got := NewMatcher("aa").FindAll("aaa aa")
	assert.Equal(t, []Range{{Start: 4, End: 6}}, got)
}

func TestSentencesKeepsEmptyPieces(t *testing.T) {
	assert.Equal(t, []string{"Hi", "There", ""}, Sentences("Hi!?! There."))
}
