// internal/app/system/generator/static.go
package generator

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dalemusser/coursepulse/internal/app/system/digest"
)

// Static produces deterministic recall questions from the document's own
// sentences. It needs no network or API key, so it is the development
// default.
type Static struct{}

func NewStatic() *Static { return &Static{} }

// Generate reads the document and builds up to count fill-in questions from
// its longest sentences. A document with no usable sentences yields an
// empty batch, not an error.
func (s *Static) Generate(ctx context.Context, documentPath string, count int) ([]digest.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(documentPath)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	sentences := readSentences(f)
	if count > len(sentences) {
		count = len(sentences)
	}

	out := make([]digest.Candidate, 0, count)
	for i := 0; i < count; i++ {
		words := strings.Fields(sentences[i])
		if len(words) < 4 {
			continue
		}
		// Blank out the longest word and offer neighbors as distractors.
		blank := longestWordIndex(words)
		answer := words[blank]
		prompt := make([]string, len(words))
		copy(prompt, words)
		prompt[blank] = "_____"

		choices := distinctChoices(answer, words, blank)
		if len(choices) < 2 {
			continue
		}
		out = append(out, digest.Candidate{
			Text:    "Fill in the blank: " + strings.Join(prompt, " "),
			Choices: choices,
			Answer:  answer,
		})
	}
	return out, nil
}

func readSentences(f *os.File) []string {
	var sentences []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		for _, part := range strings.FieldsFunc(sc.Text(), func(r rune) bool {
			return r == '.' || r == '!' || r == '?'
		}) {
			part = strings.TrimSpace(part)
			if len(strings.Fields(part)) >= 6 {
				sentences = append(sentences, part)
			}
		}
	}
	return sentences
}

func longestWordIndex(words []string) int {
	best := 0
	for i, w := range words {
		if len(w) > len(words[best]) {
			best = i
		}
	}
	return best
}

func distinctChoices(answer string, words []string, skip int) []string {
	choices := []string{answer}
	for i, w := range words {
		if i == skip || len(w) < 3 {
			continue
		}
		dup := false
		for _, c := range choices {
			if strings.EqualFold(c, w) {
				dup = true
				break
			}
		}
		if !dup {
			choices = append(choices, w)
		}
		if len(choices) == 4 {
			break
		}
	}
	return choices
}
