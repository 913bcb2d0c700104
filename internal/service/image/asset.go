package image

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"strings"
)

// ResultMimeType формат, в котором модель отдаёт изображение без фона.
const ResultMimeType = "image/png"

// ErrInvalidFileType возвращается, когда заявленный тип файла не является изображением.
var ErrInvalidFileType = errors.New("invalid file type: please upload an image file")

// SourceAsset исходная картинка, подготовленная к отправке в модель.
// Encoded хранит base64 представление файла, MimeType хранит заявленный тип как есть.
type SourceAsset struct {
	Encoded  string
	MimeType string
}

// Bytes декодирует исходные данные обратно в бинарный вид.
func (a SourceAsset) Bytes() ([]byte, error) {
	return base64.StdEncoding.DecodeString(a.Encoded)
}

// DataURL возвращает data URL для показа картинки в UI.
func (a SourceAsset) DataURL() string {
	return makeDataURL(a.MimeType, a.Encoded)
}

// ResultAsset картинка, которую вернула модель.
type ResultAsset struct {
	Data     []byte
	MimeType string
}

// NewResult собирает результат из сырых байт. Тип всегда PNG.
func NewResult(data []byte) ResultAsset {
	return ResultAsset{Data: data, MimeType: ResultMimeType}
}

// DecodeResult собирает результат из base64 строки ответа модели.
func DecodeResult(encoded string) (ResultAsset, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return ResultAsset{}, fmt.Errorf("decode inline image: %w", err)
	}
	return NewResult(data), nil
}

// DataURL возвращает data URL результата.
func (a ResultAsset) DataURL() string {
	return makeDataURL(a.MimeType, base64.StdEncoding.EncodeToString(a.Data))
}

// Ingest проверяет заявленный тип и кодирует файл для транспорта.
// Состояние приложения не трогает, этим занимается контроллер.
func Ingest(data []byte, declaredType string) (SourceAsset, error) {
	declared := strings.TrimSpace(declaredType)
	if !IsImageType(declared) {
		return SourceAsset{}, fmt.Errorf("%w: %q", ErrInvalidFileType, declared)
	}
	return SourceAsset{
		Encoded:  base64.StdEncoding.EncodeToString(data),
		MimeType: declared,
	}, nil
}

// IsImageType сообщает, подходит ли строка под шаблон image/*.
func IsImageType(mediaType string) bool {
	if mediaType == "" {
		return false
	}
	base, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return false
	}
	subtype, ok := strings.CutPrefix(base, "image/")
	return ok && subtype != "" && !strings.Contains(subtype, "/")
}

func makeDataURL(contentType, encoded string) string {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return fmt.Sprintf("data:%s;base64,%s", contentType, encoded)
}
