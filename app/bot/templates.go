package bot

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/rkaasik/sonavara/app/db"
)

const practiceMessageTemplate = `
<i>{{ .item.PromptLanguage }} {{ .item.PromptSlot }}</i>: <b>{{ .item.PromptValue }}</b>
<i>Give the {{ .item.AnswerLanguage }} {{ .item.Slot }}</i>:
{{- range $choiceIdx, $choice := .choices }}

<b>{{- if $.attempt }}{{- if eq $.attempt.Submitted $choice }}☑️ {{- end }}{{- if eq $.item.Expected $choice }}✅ {{- end }}{{- end }}{{ inc $choiceIdx }}</b>: {{ $choice }}
{{- end }}
`

const wordMessageTemplate = `<b>{{ .Word.PartOfSpeech }}</b>{{ if .Word.Clue }} ({{ .Word.Clue }}){{ end }}
{{- range $t := .Word.Translations }}
<u>{{ $t.Language }}</u>:
{{- range $f := $t.Forms }} <code>{{ $f.Value }}</code>{{- end }}
{{- end }}
`

// GetPracticeMessageText returns text for an exercise item message
func GetPracticeMessageText(session db.Session, index int) (string, error) {
	if index < 0 || index >= len(session.Items) {
		return "", fmt.Errorf("no item at index %d", index)
	}
	item := session.Items[index]
	var attempt *db.Attempt
	for i := range session.Attempts {
		if session.Attempts[i].Index == index {
			attempt = &session.Attempts[i]
			break
		}
	}
	funcMap := template.FuncMap{
		"inc": func(i int) int {
			return i + 1
		},
	}
	tmpl, err := template.New("template").Funcs(funcMap).Parse(practiceMessageTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}
	buf := &bytes.Buffer{}
	data := map[string]interface{}{
		"item":    item,
		"choices": item.Choices(),
		"attempt": attempt,
	}
	if err := tmpl.Execute(buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}

// GetWordMessageText renders a stored word with its forms
func GetWordMessageText(word db.WordRecord) (string, error) {
	tmpl, err := template.New("template").Parse(wordMessageTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}
	buf := &bytes.Buffer{}
	if err := tmpl.Execute(buf, map[string]interface{}{"Word": word}); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}
