package export

import (
	"BackgroundRemover/internal/service/image"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Saver сохраняет результат на диск по явному запросу пользователя.
type Saver struct {
	outputDir string
	now       func() time.Time
	logger    *zap.SugaredLogger
}

func NewSaver(outputDir string, logger *zap.SugaredLogger) *Saver {
	return &Saver{outputDir: outputDir, now: time.Now, logger: logger}
}

// FileName имя файла результата: <имя исходника>_no-bg_<время>.png
func (s *Saver) FileName(sourceName string) string {
	base := strings.TrimSuffix(filepath.Base(sourceName), filepath.Ext(sourceName))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "image"
	}
	return fmt.Sprintf("%s_no-bg_%s.png", base, s.now().Format("2006-01-02_15-04-05.000"))
}

// Save пишет PNG в outputDir и возвращает путь к файлу.
func (s *Saver) Save(res image.ResultAsset, sourceName string) (string, error) {
	if len(res.Data) == 0 {
		return "", errors.New("export: empty result")
	}
	if res.MimeType != image.ResultMimeType {
		return "", fmt.Errorf("export: unexpected media type %q", res.MimeType)
	}
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", err
	}

	outputPath := filepath.Join(s.outputDir, s.FileName(sourceName))
	if err := os.WriteFile(outputPath, res.Data, 0o644); err != nil {
		return "", err
	}
	s.logger.Infow("Result saved", "path", outputPath, "bytes", len(res.Data))
	return outputPath, nil
}
