package removal

import (
	"BackgroundRemover/internal/ai"
	"BackgroundRemover/internal/service/image"
)

// Instruction фиксированный промпт для модели.
const Instruction = "Remove the background from this image. " +
	"Keep only the main subject, unchanged, on a fully transparent background. " +
	"Return the result as a PNG image only."

// BuildRequest собирает запрос: сначала картинка, потом инструкция.
func BuildRequest(src image.SourceAsset) ai.Request {
	return ai.Request{Parts: []ai.Part{
		ai.InlinePart(src.MimeType, src.Encoded),
		ai.TextPart(Instruction),
	}}
}
