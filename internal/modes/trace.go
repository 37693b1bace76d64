package modes

import (
	"encoding/hex"
	"fmt"
)

// Field is one labelled hex value inside a Step.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Step records the intermediate values of one block or chunk.
type Step struct {
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Trace collects steps in block order. A nil *Trace discards everything.
type Trace struct {
	Steps []Step
}

func (t *Trace) add(title string, i int, fields ...Field) {
	if t == nil {
		return
	}
	t.Steps = append(t.Steps, Step{Title: fmt.Sprintf("%s %d", title, i+1), Fields: fields})
}

func field(label string, b []byte) Field {
	return Field{Label: label, Value: hex.EncodeToString(b)}
}
