package removal

import (
	"BackgroundRemover/internal/ai"
	"BackgroundRemover/internal/service/image"
	"fmt"
	"strings"
)

// Interpret достаёт из ответа первую картинку. Остальные картинки и текст игнорируются.
// Смотрим только первого кандидата.
func Interpret(reply ai.Reply) (image.ResultAsset, error) {
	if len(reply.Candidates) == 0 {
		return image.ResultAsset{}, &Error{Kind: KindNoImageReturned, Err: ErrNoImageReturned}
	}

	var comments []string
	for _, p := range reply.Candidates[0].Parts {
		if p.IsInlineImage() {
			res, err := image.DecodeResult(p.InlineData.Data)
			if err != nil {
				return image.ResultAsset{}, Transport(fmt.Errorf("malformed reply: %w", err))
			}
			return res, nil
		}
		if t := strings.TrimSpace(p.Text); t != "" {
			comments = append(comments, t)
		}
	}

	err := ErrNoImageReturned
	if len(comments) > 0 {
		err = fmt.Errorf("%w: %s", ErrNoImageReturned, strings.Join(comments, " "))
	}
	return image.ResultAsset{}, &Error{Kind: KindNoImageReturned, Err: err}
}
