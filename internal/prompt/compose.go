package prompt

import (
	"bytes"
	"strings"
	"sync"
	"text/template"

	"github.com/samber/lo"
	"github.com/tmorland/facegen/internal/spec"
)

const maxContextSentences = 3

const portraitTmpl = `{{.Frame}}

Character: {{.Name}}, {{.Role}}.
{{.Description}}

Setting: {{.Context}}

Style: {{.Style}}`

// Composer turns (world, character, variant) into a positive and negative
// prompt pair. Identical inputs always produce identical output.
type Composer struct {
	tmpl *template.Template
	once sync.Once
}

type templateParams struct {
	Frame       string
	Name        string
	Role        string
	Description string
	Context     string
	Style       string
}

func (c *Composer) Compose(world spec.World, character spec.Character, variant spec.Variant) (string, string, error) {
	c.once.Do(func() {
		c.tmpl = template.Must(template.New("portrait").Parse(portraitTmpl))
	})

	var buf bytes.Buffer
	err := c.tmpl.Execute(&buf, templateParams{
		Frame:       strings.TrimSpace(variant.PromptFrame),
		Name:        strings.TrimSpace(character.Name),
		Role:        strings.TrimSpace(character.Role),
		Description: strings.TrimSpace(character.Description),
		Context:     summarize(world.Context, maxContextSentences),
		Style:       strings.TrimSpace(world.Style),
	})
	if err != nil {
		return "", "", err
	}

	return normalize(buf.String()), strings.TrimSpace(world.Negative), nil
}

// summarize keeps the first maxSentences sentences of text, splitting on
// ., ! and ? while preserving the terminator. Short texts pass through
// unchanged.
func summarize(text string, maxSentences int) string {
	text = strings.TrimSpace(text)

	var sentences []string
	var current strings.Builder
	for _, r := range text {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && strings.TrimSpace(current.String()) != "" {
			sentences = append(sentences, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}
	if strings.TrimSpace(current.String()) != "" {
		sentences = append(sentences, strings.TrimSpace(current.String()))
	}

	if len(sentences) <= maxSentences {
		return text
	}
	return strings.Join(sentences[:maxSentences], " ")
}

// normalize collapses runs of whitespace within each line and drops lines
// that end up empty, keeping the paragraph boundaries between the rest.
func normalize(text string) string {
	lines := lo.FilterMap(strings.Split(text, "\n"), func(line string, _ int) (string, bool) {
		cleaned := strings.Join(strings.Fields(line), " ")
		return cleaned, cleaned != ""
	})
	return strings.Join(lines, "\n")
}
