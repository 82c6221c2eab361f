package inmemory

import "sync"

type Snapshot struct {
	WorldsCreated uint64            `json:"worlds_created"`
	ToolCallTotal uint64            `json:"tool_call_total"`
	Failures      uint64            `json:"failures"`
	ByTool        map[string]uint64 `json:"by_tool"`
}

type Recorder struct {
	mu      sync.Mutex
	worlds  uint64
	calls   uint64
	failure uint64
	byTool  map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byTool: map[string]uint64{},
	}
}

func (r *Recorder) RecordWorldCreated() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.worlds++
}

func (r *Recorder) RecordToolCall(tool string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.byTool[tool]++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		WorldsCreated: r.worlds,
		ToolCallTotal: r.calls,
		Failures:      r.failure,
		ByTool:        make(map[string]uint64, len(r.byTool)),
	}
	for k, v := range r.byTool {
		out.ByTool[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
