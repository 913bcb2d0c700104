package export

import (
	"BackgroundRemover/internal/service/image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSaver(t *testing.T) (*Saver, string) {
	dir := filepath.Join(t.TempDir(), "out")
	s := NewSaver(dir, zap.NewNop().Sugar())
	s.now = func() time.Time { return time.Date(2025, 3, 4, 5, 6, 7, 8_000_000, time.UTC) }
	return s, dir
}

func TestFileName(t *testing.T) {
	s, _ := newSaver(t)
	assert.Equal(t, "cat_no-bg_2025-03-04_05-06-07.008.png", s.FileName("/tmp/photos/cat.jpeg"))
	assert.Equal(t, "image_no-bg_2025-03-04_05-06-07.008.png", s.FileName(""))
}

func TestSave(t *testing.T) {
	s, dir := newSaver(t)

	path, err := s.Save(image.NewResult([]byte("png")), "dog.webp")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "dog_no-bg_2025-03-04_05-06-07.008.png"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), b)
}

func TestSave_SameSecondDoesNotOverwrite(t *testing.T) {
	s, _ := newSaver(t)
	base := s.now()

	first, err := s.Save(image.NewResult([]byte("one")), "cat.png")
	require.NoError(t, err)
	s.now = func() time.Time { return base.Add(time.Millisecond) }
	second, err := s.Save(image.NewResult([]byte("two")), "cat.png")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	b, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), b)
}

func TestSave_Rejects(t *testing.T) {
	s, _ := newSaver(t)

	_, err := s.Save(image.ResultAsset{}, "a.png")
	require.Error(t, err)

	_, err = s.Save(image.ResultAsset{Data: []byte("x"), MimeType: "image/jpeg"}, "a.png")
	require.Error(t, err)
}
