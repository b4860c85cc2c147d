package llm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInstructionNotFound is returned when an instruction names an unknown
// preset or carries an empty template.
var ErrInstructionNotFound = errors.New("instruction not found")

// Preset is a compiled-in rewrite instruction.
type Preset struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Template string `json:"template"`
}

// Presets lists the compiled-in rewrite instructions in display order.
var Presets = []Preset{
	{Key: "rewrite_clearer", Label: "Rewrite clearer", Template: "Rewrite the following text to be clearer and more concise:\n\n{input}"},
	{Key: "shorten", Label: "Shorten", Template: "Shorten the following text while preserving meaning:\n\n{input}"},
	{Key: "make_more_formal", Label: "Make more formal", Template: "Make the following text more formal:\n\n{input}"},
	{Key: "fix_grammar", Label: "Fix grammar", Template: "Fix grammar and spelling in the following text:\n\n{input}"},
	{Key: "bullet_points", Label: "Bullet points", Template: "Convert the following text into bullet points:\n\n{input}"},
}

// LookupPreset finds a preset by key.
func LookupPreset(key string) (Preset, bool) {
	for _, p := range Presets {
		if p.Key == key {
			return p, true
		}
	}
	return Preset{}, false
}

// BuildPrompt renders the preset named key around text.
func BuildPrompt(key, text string) (string, error) {
	p, ok := LookupPreset(key)
	if !ok {
		return "", fmt.Errorf("unknown preset %q: %w", key, ErrInstructionNotFound)
	}
	return FillTemplate(p.Template, text), nil
}

// FillTemplate substitutes text for every {text}, {input} and {selection}
// placeholder. Placeholders inside text itself are left alone.
func FillTemplate(tmpl, text string) string {
	return strings.NewReplacer(
		"{text}", text,
		"{input}", text,
		"{selection}", text,
	).Replace(tmpl)
}

// Instruction selects the template for a rewrite: either a named preset or a
// caller-supplied template. The zero value resolves to ErrInstructionNotFound.
type Instruction struct {
	preset   string
	template string
	custom   bool
}

// NamedPreset refers to one of Presets by key.
func NamedPreset(key string) Instruction {
	return Instruction{preset: key}
}

// CustomTemplate carries a template verbatim, e.g. from a saved rewrite mode.
func CustomTemplate(tmpl string) Instruction {
	return Instruction{template: tmpl, custom: true}
}

// Template resolves the instruction to its template text.
func (i Instruction) Template() (string, error) {
	if i.custom {
		if strings.TrimSpace(i.template) == "" {
			return "", fmt.Errorf("empty template: %w", ErrInstructionNotFound)
		}
		return i.template, nil
	}
	p, ok := LookupPreset(i.preset)
	if !ok {
		return "", fmt.Errorf("unknown preset %q: %w", i.preset, ErrInstructionNotFound)
	}
	return p.Template, nil
}

func (i Instruction) String() string {
	if i.custom {
		return "custom template"
	}
	return "preset " + i.preset
}
