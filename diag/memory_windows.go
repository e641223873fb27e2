//go:build windows

package diag

// Working set (RSS) logger enabled alongside the runtime logger when debug
// is on. OCR holds native allocations outside the Go heap, so RSS is the
// number that matters when tuning capture sizes.

import (
	"log/slog"
	"runtime"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

// processMemoryCounters matches PROCESS_MEMORY_COUNTERS from psapi.
type processMemoryCounters struct {
	cb                         uint32
	PageFaultCount             uint32
	PeakWorkingSetSize         uintptr
	WorkingSetSize             uintptr
	QuotaPeakPagedPoolUsage    uintptr
	QuotaPagedPoolUsage        uintptr
	QuotaPeakNonPagedPoolUsage uintptr
	QuotaNonPagedPoolUsage     uintptr
	PagefileUsage              uintptr
	PeakPagefileUsage          uintptr
}

var (
	modPsapi                 = windows.NewLazySystemDLL("psapi.dll")
	procGetProcessMemoryInfo = modPsapi.NewProc("GetProcessMemoryInfo")
)

// StartMemLogger launches a goroutine that logs memory stats every interval.
// It is best-effort; failures to query RSS are logged once and suppressed.
func StartMemLogger(interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		warned := false
		for range t.C {
			var pmc processMemoryCounters
			pmc.cb = uint32(unsafe.Sizeof(pmc))
			handle := windows.CurrentProcess()
			r1, _, callErr := procGetProcessMemoryInfo.Call(
				uintptr(handle),
				uintptr(unsafe.Pointer(&pmc)),
				uintptr(pmc.cb),
			)
			if r1 == 0 {
				if !warned {
					logger.Warn("rss query failed", slog.String("error", callErr.Error()))
					warned = true
				}
				continue
			}
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			logger.Info("memory-stats",
				slog.Uint64("working_set", uint64(pmc.WorkingSetSize)),
				slog.Uint64("heap_alloc", ms.HeapAlloc),
				slog.Uint64("heap_sys", ms.HeapSys),
			)
		}
	}()
}
