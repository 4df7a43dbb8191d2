package ecosim

import "sync"

// Recorder 仿真状态记录器
// 功能：保存最新快照与指标历史，供RPC服务在仿真运行时并发读取
// 说明：写入方只有仿真主循环；快照写入后不再修改，读取方不得修改返回的切片内容
type Recorder struct {
	mu sync.RWMutex

	day      int32
	month    int32
	latest   *Snapshot
	history  []Indicators
	capacity int // 历史最大长度，0表示不限
}

// NewRecorder 创建记录器
// 参数：capacity-保留的指标历史条数，0表示不限
func NewRecorder(capacity int) *Recorder {
	return &Recorder{
		history:  make([]Indicators, 0),
		capacity: capacity,
	}
}

// SetNow 更新当前日期
func (r *Recorder) SetNow(day, month int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.day, r.month = day, month
}

// Now 当前日期与月份
func (r *Recorder) Now() (int32, int32) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.day, r.month
}

// Record 记录一份快照
// 功能：计算指标，替换最新快照，追加指标历史
// 返回：该快照的指标
func (r *Recorder) Record(s Snapshot) Indicators {
	ind := Measure(s)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.day, r.month = s.Day, s.Month
	r.latest = &s
	r.history = append(r.history, ind)
	if r.capacity > 0 && len(r.history) > r.capacity {
		r.history = r.history[len(r.history)-r.capacity:]
	}
	return ind
}

// Latest 最新快照
// 返回：快照，尚未记录时返回false
func (r *Recorder) Latest() (Snapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.latest == nil {
		return Snapshot{}, false
	}
	return *r.latest, true
}

// History 指标历史副本，按记录顺序
func (r *Recorder) History() []Indicators {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Indicators, len(r.history))
	copy(out, r.history)
	return out
}
