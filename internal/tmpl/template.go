// Package tmpl parses the contents of template literals into alternating
// constant and interpolated-expression fragments.
package tmpl

import "fmt"

// Fragment is one piece of a template literal: either a run of constant
// text or the source text of one ${...} interpolation.
type Fragment struct {
	value      string // fragment text; for variables, the text between { and }
	isVariable bool   // true if this is a ${...} interpolation
}

// Value returns the fragment's text content.
func (f *Fragment) Value() string {
	return f.value
}

// IsVariable returns true if the fragment is a ${...} interpolation.
func (f *Fragment) IsVariable() bool {
	return f.isVariable
}

// Template is a parsed template literal body.
type Template struct {
	value     string
	fragments []*Fragment
}

// Value returns the original template text.
func (t *Template) Value() string {
	return t.value
}

// Fragments returns the template's fragments in source order.
func (t *Template) Fragments() []*Fragment {
	return t.fragments
}

// Parse splits the body of a template literal (the text between the
// backticks) into constant and interpolated fragments. A "$" not followed
// by "{" is plain text. Backslash escapes the next character.
func Parse(s string) (*Template, error) {
	template := &Template{value: s}
	var current []rune
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\\' && i+1 < len(runes) {
			current = append(current, r, runes[i+1])
			i++
			continue
		}
		if r == '$' && i+1 < len(runes) && runes[i+1] == '{' {
			if len(current) > 0 {
				template.fragments = append(template.fragments, &Fragment{
					value: string(current),
				})
				current = nil
			}
			closing := -1
			depth := 0
			for j := i + 2; j < len(runes); j++ {
				switch runes[j] {
				case '{':
					depth++
				case '}':
					if depth == 0 {
						closing = j
					} else {
						depth--
					}
				}
				if closing != -1 {
					break
				}
			}
			if closing == -1 {
				return nil, fmt.Errorf("missing '}' in template: %s", s)
			}
			template.fragments = append(template.fragments, &Fragment{
				value:      string(runes[i+2 : closing]),
				isVariable: true,
			})
			i = closing
			continue
		}
		current = append(current, r)
	}
	if len(current) > 0 {
		template.fragments = append(template.fragments, &Fragment{
			value: string(current),
		})
	}
	return template, nil
}
