package prompts

import (
	"errors"
	"fmt"
	"strings"
)

// Field identifies one output column of a prompt page.
type Field int

const (
	FieldPurpose Field = iota
	FieldRole
	FieldPreconditions
	FieldEvaluation
	FieldClarification
	FieldResources
	FieldInstructions
	FieldOutputFormat
	FieldProblem
	FieldDesiredOutcome
	FieldNotes

	fieldCount
)

// URLColumn is the header of the leading column holding the page url.
const URLColumn = "URL"

var ErrUnknownField = errors.New("unknown field")

type fieldInfo struct {
	key   string
	label string
}

// order matters, it is the column order of every export
var fields = [fieldCount]fieldInfo{
	FieldPurpose:        {key: "purpose", label: "目的・ねらい"},
	FieldRole:           {key: "role", label: "あなたの役割"},
	FieldPreconditions:  {key: "preconditions", label: "前提条件"},
	FieldEvaluation:     {key: "evaluation", label: "評価の基準"},
	FieldClarification:  {key: "clarification", label: "明確化の要件"},
	FieldResources:      {key: "resources", label: "リソース"},
	FieldInstructions:   {key: "instructions", label: "実行指示"},
	FieldOutputFormat:   {key: "output_format", label: "出力形式"},
	FieldProblem:        {key: "problem", label: "問題の内容"},
	FieldDesiredOutcome: {key: "desired_outcome", label: "希望する結末"},
	FieldNotes:          {key: "notes", label: "補足"},
}

func (f Field) valid() bool {
	return f >= 0 && f < fieldCount
}

// Key is the stable ascii identifier used in storage.
func (f Field) Key() string {
	if !f.valid() {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fields[f].key
}

// Label is the heading text on the page and the export header.
func (f Field) Label() string {
	if !f.valid() {
		return ""
	}
	return fields[f].label
}

func (f Field) String() string {
	return f.Key()
}

// Fields returns every field in column order.
func Fields() []Field {
	out := make([]Field, fieldCount)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

// Columns returns the export header: the url column followed by every
// field label.
func Columns() []string {
	out := make([]string, 0, fieldCount+1)
	out = append(out, URLColumn)
	for _, f := range Fields() {
		out = append(out, f.Label())
	}
	return out
}

// ParseField accepts either a field key or its label.
func ParseField(name string) (Field, error) {
	name = strings.TrimSpace(name)
	for _, f := range Fields() {
		if f.Key() == name || f.Label() == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}
