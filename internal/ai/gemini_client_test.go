package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestToGenAIParts(t *testing.T) {
	parts, err := toGenAIParts(Request{Parts: []Part{InlinePart("image/webp", "AQID"), TextPart("hi")}})
	require.NoError(t, err)
	require.Len(t, parts, 2)
	require.NotNil(t, parts[0].InlineData)
	assert.Equal(t, []byte{1, 2, 3}, parts[0].InlineData.Data)
	assert.Equal(t, "image/webp", parts[0].InlineData.MIMEType)
	assert.Equal(t, "hi", parts[1].Text)

	_, err = toGenAIParts(Request{Parts: []Part{InlinePart("image/png", "!!")}})
	require.Error(t, err)
}

func TestFromGenAIResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
		nil,
		{Content: nil},
		{Content: &genai.Content{Parts: []*genai.Part{
			{Text: "sure"},
			nil,
			{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("AAA")}},
		}}},
	}}

	reply := fromGenAIResponse(resp)
	require.Len(t, reply.Candidates, 1)
	require.Len(t, reply.Candidates[0].Parts, 2)
	assert.Equal(t, "sure", reply.Candidates[0].Parts[0].Text)
	assert.Equal(t, "QUFB", reply.Candidates[0].Parts[1].InlineData.Data)

	assert.Empty(t, fromGenAIResponse(nil).Candidates)
}
