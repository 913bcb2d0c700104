package ai

import "strings"

// InlineData бинарные данные внутри запроса/ответа. Data в base64, как на проводе.
type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// Part фрагмент запроса или ответа: либо текст, либо inline данные.
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

// TextPart создаёт текстовый фрагмент.
func TextPart(text string) Part { return Part{Text: text} }

// InlinePart создаёт фрагмент с картинкой.
func InlinePart(mimeType, encoded string) Part {
	return Part{InlineData: &InlineData{MimeType: mimeType, Data: encoded}}
}

// IsInline сообщает, несёт ли фрагмент непустые inline данные.
func (p Part) IsInline() bool {
	return p.InlineData != nil && p.InlineData.Data != ""
}

// IsInlineImage как IsInline, но только для image/* данных.
func (p Part) IsInlineImage() bool {
	return p.IsInline() && strings.HasPrefix(strings.ToLower(strings.TrimSpace(p.InlineData.MimeType)), "image/")
}

// Request упорядоченный список фрагментов одного пользовательского сообщения.
type Request struct {
	Parts []Part `json:"parts"`
}

// Candidate один вариант ответа модели.
type Candidate struct {
	Parts []Part `json:"parts"`
}

// Reply ответ модели. Пустой список кандидатов допустим.
type Reply struct {
	Candidates []Candidate `json:"candidates"`
}
