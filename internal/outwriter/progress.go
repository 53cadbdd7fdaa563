package outwriter

import (
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/fmtgauge/internal/contract"
	"github.com/huangsam/fmtgauge/schema"
)

// Progress is a plain stderr progress printer for the analysis engine. It
// is safe for concurrent use by the worker pool.
type Progress struct {
	mu        sync.Mutex
	total     int
	done      int
	useColors bool
}

// NewProgress returns a progress printer over a known file total.
func NewProgress(total int, useColors bool) *Progress {
	return &Progress{total: total, useColors: useColors}
}

// FileDone advances the shared counter by one completed file.
func (p *Progress) FileDone(project, file string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	fmt.Fprintf(os.Stderr, "\r%d/%d files checked", p.done, p.total)
}

// ProjectDone reports one project's overall rollup on its own line.
func (p *Progress) ProjectDone(project string, overall schema.ResultType) {
	p.mu.Lock()
	defer p.mu.Unlock()
	label := contract.GetPlainLabel(overall)
	if p.useColors {
		label = contract.GetColorLabel(overall)
	}
	fmt.Fprintf(os.Stderr, "\r%-40s %s\n", project, label)
}
