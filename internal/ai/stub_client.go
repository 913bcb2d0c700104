package ai

import "context"

// StubClient заглушка, которая не делает реальных запросов: возвращает первую картинку из запроса.
type StubClient struct{}

func NewStubClient() *StubClient { return &StubClient{} }

func (c *StubClient) Generate(ctx context.Context, req Request) (Reply, error) {
	if err := ctx.Err(); err != nil {
		return Reply{}, err
	}
	parts := []Part{TextPart("запрос получен")}
	for _, p := range req.Parts {
		if p.IsInlineImage() {
			parts = append(parts, InlinePart("image/png", p.InlineData.Data))
			break
		}
	}
	return Reply{Candidates: []Candidate{{Parts: parts}}}, nil
}
