package pipeline

import (
	"BackgroundRemover/internal/ai"
	"BackgroundRemover/internal/metrics"
	"BackgroundRemover/internal/service/image"
	"BackgroundRemover/internal/service/removal"
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultTimeout = 2 * time.Minute

// Controller единственный владелец состояния конвейера.
// Только его методы меняют состояние; одновременно в полёте не больше одного запроса,
// который мы готовы применить. Ответы старых поколений отбрасываются.
type Controller struct {
	client  ai.Client
	timeout time.Duration
	metrics *metrics.Metrics
	logger  *zap.SugaredLogger

	mu     sync.Mutex
	state  State
	source *image.SourceAsset
	result *image.ResultAsset
	errRec *removal.ErrorRecord
	gen    uint64 // Поколение: растёт при каждом запуске, сбросе и новой загрузке

	wg     sync.WaitGroup
	notify chan struct{}
}

func New(client ai.Client, timeout time.Duration, m *metrics.Metrics, logger *zap.SugaredLogger) *Controller {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Controller{
		client:  client,
		timeout: timeout,
		metrics: m,
		logger:  logger,
		notify:  make(chan struct{}, 1),
	}
}

// IngestFile принимает файл от UI. Успех работает как сброс + загрузка.
// При ошибке состояние не меняется, выставляется только ErrorRecord.
func (c *Controller) IngestFile(data []byte, declaredType string) Snapshot {
	src, err := image.Ingest(data, declaredType)
	c.metrics.ObserveIngest(err == nil)

	c.mu.Lock()
	if err != nil {
		rec := removal.AsRecord(err)
		c.errRec = &rec
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.logger.Warnw("File rejected", "declaredType", declaredType, "state", snap.State.String(), "error", err)
		c.signal()
		return snap
	}

	c.gen++
	c.state = Loaded
	c.source = &src
	c.result = nil
	c.errRec = nil
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Infow("Image loaded", "mimeType", src.MimeType, "bytes", len(data), "generation", snap.Generation)
	c.signal()
	return snap
}

// StartRemoval запускает запрос к модели. Разрешено из Loaded и Failed (повтор без повторной загрузки).
// В остальных состояниях ничего не делает и возвращает false.
// Отмена ctx не прерывает запрос: он живёт до ответа или таймаута.
func (c *Controller) StartRemoval(ctx context.Context) (Snapshot, bool) {
	c.mu.Lock()
	if (c.state != Loaded && c.state != Failed) || c.source == nil {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.logger.Debugw("Start ignored", "state", snap.State.String())
		return snap, false
	}

	c.gen++
	localGen := c.gen
	c.state = Processing
	c.result = nil
	c.errRec = nil
	req := removal.BuildRequest(*c.source)
	snap := c.snapshotLocked()
	c.wg.Add(1)
	c.mu.Unlock()

	c.metrics.ObserveAttempt()
	requestID := uuid.NewString()
	c.logger.Infow("Background removal started", "requestID", requestID, "generation", localGen)
	c.signal()

	go c.run(context.WithoutCancel(ctx), localGen, requestID, req)
	return snap, true
}

// Reset возвращает конвейер в Idle. Запрос в полёте не прерывается, его ответ будет отброшен.
func (c *Controller) Reset() Snapshot {
	c.mu.Lock()
	c.gen++
	c.state = Idle
	c.source = nil
	c.result = nil
	c.errRec = nil
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Infow("Pipeline reset", "generation", snap.Generation)
	c.signal()
	return snap
}

// Snapshot текущее состояние.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// NotifyCh сигналит после каждого изменения. Сигналы схлопываются: читать Snapshot после сигнала.
func (c *Controller) NotifyCh() <-chan struct{} { return c.notify }

// Wait блокируется, пока не вернутся все запущенные вызовы модели, включая устаревшие.
func (c *Controller) Wait() { c.wg.Wait() }

func (c *Controller) run(ctx context.Context, localGen uint64, requestID string, req ai.Request) {
	defer c.wg.Done()

	callCtx, cancel := context.WithTimeoutCause(ctx, c.timeout, errors.New("model request timeout"))
	defer cancel()

	start := time.Now()
	res, err := c.call(callCtx, req)
	took := time.Since(start)
	if err != nil && callCtx.Err() != nil {
		c.logger.Warnw("Model call interrupted", "requestID", requestID, "cause", context.Cause(callCtx))
	}
	c.apply(localGen, requestID, res, err, took)
}

// call выполняет запрос и разбирает ответ. Паника клиента превращается в ошибку транспорта.
func (c *Controller) call(ctx context.Context, req ai.Request) (res image.ResultAsset, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = image.ResultAsset{}
			err = removal.Transport(fmt.Errorf("model client panic: %v", r))
		}
	}()

	reply, err := c.client.Generate(ctx, req)
	if err != nil {
		return image.ResultAsset{}, removal.Transport(err)
	}
	return removal.Interpret(reply)
}

func (c *Controller) apply(localGen uint64, requestID string, res image.ResultAsset, err error, took time.Duration) {
	c.mu.Lock()
	if localGen != c.gen || c.state != Processing {
		current := c.gen
		c.mu.Unlock()
		c.metrics.ObserveReply("", "", took, true)
		c.logger.Infow("Discarding stale reply", "requestID", requestID, "generation", localGen, "current", current)
		return
	}

	if err != nil {
		rec := removal.AsRecord(err)
		c.state = Failed
		c.result = nil
		c.errRec = &rec
		c.mu.Unlock()
		c.metrics.ObserveReply(metrics.OutcomeFailed, rec.Kind.String(), took, false)
		c.logger.Errorw("Background removal failed", "requestID", requestID, "kind", rec.Kind.String(), "duration", took.String(), "error", err)
		c.signal()
		return
	}

	c.state = Succeeded
	c.result = &res
	c.errRec = nil
	c.mu.Unlock()
	c.metrics.ObserveReply(metrics.OutcomeSucceeded, "", took, false)
	c.logger.Infow("Background removed", "requestID", requestID, "bytes", len(res.Data), "duration", took.String())
	c.signal()
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{State: c.state, Generation: c.gen}
	if c.source != nil {
		src := *c.source
		snap.Source = &src
	}
	if c.result != nil {
		res := *c.result
		res.Data = bytes.Clone(c.result.Data)
		snap.Result = &res
	}
	if c.errRec != nil {
		rec := *c.errRec
		snap.Err = &rec
	}
	return snap
}

func (c *Controller) signal() {
	select {
	case c.notify <- struct{}{}:
	default:
	}
}
