package replay

import (
	"sync"
	"time"

	"github.com/pkg/errors"
)

// ErrBusy 已有回放在进行
var ErrBusy = errors.New("replay already running")

// Status 回放状态，供Web接口查询
type Status struct {
	IsPlaying           bool    `json:"is_playing"`           // 是否正在回放
	CurrentFile         string  `json:"current_file"`         // 当前文件
	CurrentEvent        int     `json:"current_event"`        // 已发送记录数
	TotalEvents         int     `json:"total_events"`         // 记录总数
	Progress            float64 `json:"progress"`             // 进度（0-100）
	ElapsedTime         string  `json:"elapsed_time"`         // 已回放时间
	TheoreticalDuration float64 `json:"theoretical_duration"` // 理论时长（秒）
	ActualDuration      float64 `json:"actual_duration"`      // 实际时长（秒）
	Late                int     `json:"late"`                 // 迟到的记录数
	MaxLagMS            float64 `json:"max_lag_ms"`           // 最大延迟（毫秒）
	Error               string  `json:"error,omitempty"`      // 结束时的错误
}

// Tracker 回放状态，同一时间只允许一个回放
type Tracker struct {
	mu      sync.RWMutex
	status  Status
	started time.Time
	now     func() time.Time
}

// NewTracker 创建状态跟踪器
func NewTracker() *Tracker {
	return &Tracker{now: time.Now}
}

// Begin 标记开始，已在回放时返回ErrBusy
func (t *Tracker) Begin(file string, total int, theoretical time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status.IsPlaying {
		return ErrBusy
	}
	t.started = t.now()
	t.status = Status{
		IsPlaying:           true,
		CurrentFile:         file,
		TotalEvents:         total,
		TheoreticalDuration: theoretical.Seconds(),
	}
	return nil
}

// Update 更新进度
func (t *Tracker) Update(current int, stats Stats) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status.CurrentEvent = current
	if t.status.TotalEvents > 0 {
		t.status.Progress = float64(current) / float64(t.status.TotalEvents) * 100
	}
	t.status.ElapsedTime = t.now().Sub(t.started).Round(time.Second).String()
	t.status.Late = stats.Late
	t.status.MaxLagMS = float64(stats.MaxLag) / float64(time.Millisecond)
}

// Finish 标记结束
func (t *Tracker) Finish(stats Stats, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status.IsPlaying = false
	t.status.ActualDuration = stats.Elapsed.Seconds()
	t.status.Late = stats.Late
	t.status.MaxLagMS = float64(stats.MaxLag) / float64(time.Millisecond)
	if err != nil {
		t.status.Error = err.Error()
		return
	}
	t.status.Progress = 100
}

// Status 当前状态的副本
func (t *Tracker) Status() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

// IsRunning 是否正在回放
func (t *Tracker) IsRunning() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status.IsPlaying
}
