// jobqueue.go - Mutex-geschuetzte Kachel-Warteschlange
//
// Eine einzige mutex-geschuetzte Push/Pop-Warteschlange statt eines
// gepufferten Channels: die gesamte Kachelliste wird beim Scheduler-
// Start auf einmal eingereiht, nicht schrittweise produziert, sodass
// ein Channel keinen Vorteil gegenueber einem einfachen Slice+Mutex
// brint.
package schedule

import (
	"sync"

	"github.com/mantaray/manta/internal/imaging"
)

// Job is one unit of work a worker pops off the queue: a tile to trace
// and splat.
type Job struct {
	ID    int
	Tile  imaging.TileBounds
}

// JobQueue is a FIFO guarded by a single mutex, grounded on the
// reference scheduler's single-lock push/pop discipline.
type JobQueue struct {
	mu    sync.Mutex
	items []Job
	head  int
}

func NewJobQueue(jobs []Job) *JobQueue {
	return &JobQueue{items: jobs}
}

// Pop removes and returns the next job, or ok=false once the queue is
// drained.
func (q *JobQueue) Pop() (Job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.head >= len(q.items) {
		return Job{}, false
	}
	j := q.items[q.head]
	q.head++
	return j, true
}

// Remaining reports how many jobs are still queued.
func (q *JobQueue) Remaining() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

func (q *JobQueue) Total() int {
	return len(q.items)
}
