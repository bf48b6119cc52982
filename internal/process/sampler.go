// Package process samples CPU and memory usage of spawned encoder
// processes so long encodes can report resource pressure alongside
// progress.
package process

import (
	"sync"

	gopsutilprocess "github.com/shirou/gopsutil/v3/process"
)

// Usage is one resource sample.
type Usage struct {
	CPUPercent float64
	RSSBytes   uint64
}

// Sampler tracks one process at a time. The zero value is usable; Sample
// on an unattached sampler returns zeros.
type Sampler struct {
	mu   sync.RWMutex
	proc *gopsutilprocess.Process
}

// Attach binds the sampler to a running process.
func (s *Sampler) Attach(pid int) error {
	proc, err := gopsutilprocess.NewProcess(int32(pid))
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.proc = proc
	s.mu.Unlock()
	return nil
}

// Release detaches the sampler.
func (s *Sampler) Release() {
	s.mu.Lock()
	s.proc = nil
	s.mu.Unlock()
}

// Sample reads current CPU and resident memory. Errors from a process
// that has already exited degrade to zero values.
func (s *Sampler) Sample() Usage {
	s.mu.RLock()
	proc := s.proc
	s.mu.RUnlock()
	if proc == nil {
		return Usage{}
	}
	var usage Usage
	if cpu, err := proc.CPUPercent(); err == nil {
		usage.CPUPercent = cpu
	}
	if mem, err := proc.MemoryInfo(); err == nil && mem != nil {
		usage.RSSBytes = mem.RSS
	}
	return usage
}
