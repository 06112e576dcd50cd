// Package system handles host-level setup for a render run.
package system

import (
	"runtime"
	"syscall"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/oceanviz/staircase/internal/log"
)

// InitResourceLimits raises the open-file limit. A run writes one PNG per
// frame into the frames directory and the default soft limit can be low on
// macOS.
func InitResourceLimits() {
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Warnf("could not read open-file limit: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Warnf("could not raise open-file limit: %v", err)
		return
	}
	log.Debugf("open-file limit raised to %d", rLimit.Cur)
}

// LogHostInfo reports the cores and memory available to the render pool.
func LogHostInfo() {
	cores, err := cpu.Counts(true)
	if err != nil {
		cores = runtime.NumCPU()
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		log.Infof("host: %d cores", cores)
		return
	}
	log.Infof("host: %d cores, %.1f GiB memory available", cores, float64(vm.Available)/(1<<30))
}
