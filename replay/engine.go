// Package replay 按时间表把预计算的触摸序列发送到设备。
package replay

import (
	"context"
	"time"

	"github.com/bep/debounce"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Crush251/touchplay/sequence"
	"github.com/Crush251/touchplay/transport"
)

////////////////////////////////////////////////////////////////////////////////
// 回放引擎
////////////////////////////////////////////////////////////////////////////////

// Clock 时间来源，测试时替换
type Clock struct {
	Now   func() time.Time
	Sleep func(ctx context.Context, d time.Duration) error
}

// SystemClock 系统时钟
func SystemClock() Clock {
	return Clock{Now: time.Now, Sleep: sleep}
}

// sleep 可被ctx打断的等待
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Options 回放选项
type Options struct {
	LagWarn         time.Duration // 超过该延迟记为迟到
	ProgressLog     time.Duration // 进度日志的静默间隔
	ReleaseOnFinish bool          // 结束后抬起全部触摸点
}

// Stats 回放统计
type Stats struct {
	Sent    int
	Late    int
	MaxLag  time.Duration
	Elapsed time.Duration
}

// Engine 回放引擎
type Engine struct {
	seq     *sequence.TouchSequence
	tr      transport.Transport
	opts    Options
	clock   Clock
	log     *zap.Logger
	tracker *Tracker
}

// NewEngine 创建回放引擎
func NewEngine(seq *sequence.TouchSequence, tr transport.Transport, opts Options, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.ProgressLog <= 0 {
		opts.ProgressLog = time.Second
	}
	return &Engine{
		seq:     seq,
		tr:      tr,
		opts:    opts,
		clock:   SystemClock(),
		log:     log.Named("replay"),
		tracker: NewTracker(),
	}
}

// WithClock 替换时钟
func (e *Engine) WithClock(c Clock) *Engine {
	e.clock = c
	return e
}

// WithTracker 使用共享的状态跟踪器
func (e *Engine) WithTracker(t *Tracker) *Engine {
	e.tracker = t
	return e
}

// Tracker 当前使用的状态跟踪器
func (e *Engine) Tracker() *Tracker {
	return e.tracker
}

// Play 按绝对时间表顺序发送每一条记录
//
// 每条记录的发送时刻是 start+TimeMS；已经晚了就立即发送并计入延迟，
// 不跳过也不重排。ctx只在进程退出时取消。
func (e *Engine) Play(ctx context.Context) (Stats, error) {
	var stats Stats
	meta := e.seq.Meta
	e.log.Info("🎵 开始回放",
		zap.String("file", meta.SourceFile),
		zap.String("title", meta.Title),
		zap.Int("records", len(e.seq.Records)),
		zap.Duration("duration", e.seq.Duration()),
	)

	progress := debounce.New(e.opts.ProgressLog)
	start := e.clock.Now()
	for i, r := range e.seq.Records {
		due := start.Add(time.Duration(r.TimeMS) * time.Millisecond)
		if wait := due.Sub(e.clock.Now()); wait > 0 {
			if err := e.clock.Sleep(ctx, wait); err != nil {
				stats.Elapsed = e.clock.Now().Sub(start)
				return stats, errors.Wrapf(err, "replay interrupted at record %d", i)
			}
		}

		lag := e.clock.Now().Sub(due)
		if lag > stats.MaxLag {
			stats.MaxLag = lag
		}
		if lag > e.opts.LagWarn {
			stats.Late++
		}

		if err := e.tr.Send(r); err != nil {
			stats.Elapsed = e.clock.Now().Sub(start)
			return stats, errors.Wrapf(err, "send record %d", i)
		}
		stats.Sent++
		e.tracker.Update(stats.Sent, stats)

		snapshot := stats
		progress(func() {
			e.log.Info("▶️  回放进度",
				zap.Int("sent", snapshot.Sent),
				zap.Int("total", len(e.seq.Records)),
				zap.Int("late", snapshot.Late),
			)
		})
	}
	stats.Elapsed = e.clock.Now().Sub(start)

	e.log.Info("✅ 回放完成",
		zap.Duration("theoretical", e.seq.Duration()),
		zap.Duration("actual", stats.Elapsed),
		zap.Duration("drift", stats.Elapsed-e.seq.Duration()),
		zap.Int("late", stats.Late),
		zap.Duration("max_lag", stats.MaxLag),
	)
	return stats, nil
}

// Run 回放并清理：标记状态，必要时抬起全部触摸点
func (e *Engine) Run(ctx context.Context) (Stats, error) {
	if err := e.tracker.Begin(e.seq.Meta.SourceFile, len(e.seq.Records), e.seq.Duration()); err != nil {
		return Stats{}, err
	}
	stats, err := e.Play(ctx)
	e.cleanup(ctx, stats, err)
	return stats, err
}

// PlayAsync 在后台回放，已有回放时返回ErrBusy；done在清理之后调用
func (e *Engine) PlayAsync(ctx context.Context, done func(Stats, error)) error {
	if err := e.tracker.Begin(e.seq.Meta.SourceFile, len(e.seq.Records), e.seq.Duration()); err != nil {
		return err
	}
	go func() {
		stats, err := e.Play(ctx)
		e.cleanup(ctx, stats, err)
		if done != nil {
			done(stats, err)
		}
	}()
	return nil
}

// cleanup 统一的收尾
func (e *Engine) cleanup(ctx context.Context, stats Stats, err error) {
	if err != nil {
		e.log.Error("❌ 回放出错", zap.Error(err), zap.Int("sent", stats.Sent))
	}
	if e.opts.ReleaseOnFinish || ctx.Err() != nil {
		e.log.Info("🤲 抬起全部触摸点")
		if rerr := transport.ReleaseAll(e.tr); rerr != nil {
			e.log.Warn("⚠️  抬起触摸点失败", zap.Error(rerr))
		}
	}
	e.tracker.Finish(stats, err)
}
