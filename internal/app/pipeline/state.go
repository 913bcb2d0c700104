package pipeline

import (
	"BackgroundRemover/internal/service/image"
	"BackgroundRemover/internal/service/removal"
	"fmt"
)

// State состояние конвейера. Экземпляр один на сессию.
type State int

const (
	Idle State = iota
	Loaded
	Processing
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loaded:
		return "loaded"
	case Processing:
		return "processing"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Snapshot копия состояния для отрисовки. Ассеты неизменяемы, их данные нельзя править.
type Snapshot struct {
	State      State
	Source     *image.SourceAsset
	Result     *image.ResultAsset
	Err        *removal.ErrorRecord
	Generation uint64
}
