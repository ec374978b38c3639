package sampler

import (
	"sync"

	"github.com/vitalis-app/cputray/internal/models"
)

// Pinner keeps one user-chosen process at a fixed position in the popup
// list while the rest of the list re-ranks around it.
type Pinner struct {
	mu       sync.Mutex
	pid      uint32
	position int
	pinned   bool
}

// Pin pins pid at position. Pinning the already pinned pid unpins it.
func (p *Pinner) Pin(pid uint32, position int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pinned && p.pid == pid {
		p.pinned = false
		return
	}
	if position < 0 {
		position = 0
	}
	p.pid, p.position, p.pinned = pid, position, true
}

// Unpin clears any pin.
func (p *Pinner) Unpin() {
	p.mu.Lock()
	p.pinned = false
	p.mu.Unlock()
}

// Pinned returns the pinned pid and its position.
func (p *Pinner) Pinned() (pid uint32, position int, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pid, p.position, p.pinned
}

// Arrange builds the popup list for snapshot. The pinned process is moved
// to its position; if it has left the snapshot the pin is cleared. Every
// view carries its rank in the unarranged snapshot.
func (p *Pinner) Arrange(snapshot models.RankedSnapshot) []models.ProcessView {
	views := make([]models.ProcessView, 0, len(snapshot))
	for i, s := range snapshot {
		views = append(views, models.ProcessView{
			ProcessSample: s,
			Rank:          i + 1,
			Class:         models.ClassifyUsage(s.CPUUsage),
		})
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.pinned {
		return views
	}

	idx := -1
	for i, v := range views {
		if v.PID == p.pid {
			idx = i
			break
		}
	}
	if idx < 0 {
		p.pinned = false
		return views
	}

	pinned := views[idx]
	pinned.Pinned = true
	rest := append(views[:idx:idx], views[idx+1:]...)

	pos := p.position
	if pos > len(rest) {
		pos = len(rest)
	}
	arranged := make([]models.ProcessView, 0, len(views))
	arranged = append(arranged, rest[:pos]...)
	arranged = append(arranged, pinned)
	arranged = append(arranged, rest[pos:]...)

	if len(arranged) > models.MaxRanked {
		arranged = arranged[:models.MaxRanked]
	}
	return arranged
}
