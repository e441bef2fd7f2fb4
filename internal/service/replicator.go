package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/d60-Lab/microblog/internal/metrics"
	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
	"github.com/d60-Lab/microblog/pkg/logger"
)

type activityJob struct {
	activity model.Activity
	enqAt    time.Time
}

// ActivityReplicator 本地异步外发执行器：写成功后把活动投递到所有落地端
type ActivityReplicator struct {
	sinks     []repository.ActivitySink
	ch        chan activityJob
	metricsCh chan time.Duration
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewActivityReplicator(sinks []repository.ActivitySink, queueSize int, m *metrics.Metrics) *ActivityReplicator {
	if queueSize <= 0 {
		queueSize = 10000
	}
	return &ActivityReplicator{
		sinks:     sinks,
		ch:        make(chan activityJob, queueSize),
		metricsCh: make(chan time.Duration, 65536),
		metrics:   m,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Start 启动 workers，返回停止函数：停止取新任务前先尽量排空队列，最多等待 ctx 或 2 秒
func (r *ActivityReplicator) Start(workers int) func(context.Context) error {
	if workers <= 0 {
		workers = 4
	}
	stopCh := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case job := <-r.ch:
					r.deliver(job)
				case <-stopCh:
					return
				}
			}
		}()
	}
	var once sync.Once
	return func(ctx context.Context) error {
		var err error
		once.Do(func() {
			r.drain(ctx)
			close(stopCh)
			wg.Wait()
			err = r.closeSinks()
		})
		return err
	}
}

func (r *ActivityReplicator) drain(ctx context.Context) {
	timeout := time.After(2 * time.Second)
	for len(r.ch) > 0 {
		select {
		case <-timeout:
			logger.Warn("activity queue not drained before stop", zap.Int("pending", len(r.ch)))
			return
		case <-ctx.Done():
			return
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func (r *ActivityReplicator) deliver(job activityJob) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var result *multierror.Error
	for _, sink := range r.sinks {
		if err := sink.Append(ctx, &job.activity); err != nil {
			result = multierror.Append(result, &SinkError{Sink: sink.Name(), Err: err})
		}
	}
	err := result.ErrorOrNil()
	if err != nil {
		logger.Error("activity delivery failed",
			zap.String("id", job.activity.ID),
			zap.String("type", string(job.activity.Type)),
			zap.Error(err),
		)
	}

	d := time.Since(job.enqAt)
	r.metrics.ObserveActivity(d, err)
	r.metrics.SetActivityQueue(len(r.ch))
	select {
	case r.metricsCh <- d:
	default:
	}
}

func (r *ActivityReplicator) closeSinks() error {
	var result *multierror.Error
	for _, sink := range r.sinks {
		if err := sink.Close(); err != nil {
			result = multierror.Append(result, &SinkError{Sink: sink.Name(), Err: err})
		}
	}
	return result.ErrorOrNil()
}

// Enqueue 非阻塞入队；队列满时丢弃并告警
func (r *ActivityReplicator) Enqueue(typ model.ActivityType, actorID, subjectID string) {
	if r == nil {
		return
	}
	a := model.Activity{
		ID:        uuid.NewString(),
		Type:      typ,
		ActorID:   actorID,
		SubjectID: subjectID,
		CreatedAt: r.now(),
	}
	select {
	case r.ch <- activityJob{activity: a, enqAt: time.Now()}:
		r.metrics.SetActivityQueue(len(r.ch))
	default:
		r.metrics.ActivityDropped()
		logger.Warn("activity queue full, drop",
			zap.String("type", string(typ)),
			zap.String("actor", actorID),
			zap.String("subject", subjectID),
		)
	}
}

// Metrics 返回落地耗时的只读通道（每处理一条发送一次 duration）。
func (r *ActivityReplicator) Metrics() <-chan time.Duration { return r.metricsCh }

// QueueLen 返回当前队列长度（采样值）。
func (r *ActivityReplicator) QueueLen() int { return len(r.ch) }

// SinkError 单个落地端的失败
type SinkError struct {
	Sink string
	Err  error
}

func (e *SinkError) Error() string { return e.Sink + ": " + e.Err.Error() }

func (e *SinkError) Unwrap() error { return e.Err }
