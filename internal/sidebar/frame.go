package sidebar

import (
	"sync"
)

// FrameTask is a unit of work queued for the next display frame.
type FrameTask struct {
	fn        func()
	cancelled bool
}

// Cancel prevents the task from running if it has not run yet.
func (t *FrameTask) Cancel() {
	if t != nil {
		t.cancelled = true
	}
}

// FrameScheduler queues work until the host runs its next frame.
type FrameScheduler struct {
	mu    sync.Mutex
	queue []*FrameTask
}

func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

// Schedule enqueues fn for the next frame.
func (f *FrameScheduler) Schedule(fn func()) *FrameTask {
	task := &FrameTask{fn: fn}
	f.mu.Lock()
	f.queue = append(f.queue, task)
	f.mu.Unlock()
	return task
}

// Pending returns the number of tasks waiting for a frame.
func (f *FrameScheduler) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// RunFrame runs the tasks queued before the call. Tasks scheduled while
// the frame runs wait for the following frame.
func (f *FrameScheduler) RunFrame() int {
	f.mu.Lock()
	tasks := f.queue
	f.queue = nil
	f.mu.Unlock()

	ran := 0
	for _, task := range tasks {
		if task.cancelled || task.fn == nil {
			continue
		}
		task.fn()
		ran++
	}
	return ran
}
