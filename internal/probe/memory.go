package probe

import (
	"os"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/mem"
)

// MemoryPages reads page counts by category. Platforms without a wired
// counter report unreclaimable kernel memory instead; platforms without a
// compressor report zero compressed pages.
func (h *Host) MemoryPages() (Pages, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return Pages{}, errors.Wrap(err, "read virtual memory")
	}
	size := h.PageSize()
	wired := vm.Wired
	if wired == 0 {
		wired = vm.Sunreclaim + vm.PageTables
	}
	return Pages{
		Active: vm.Active / size,
		Wired:  wired / size,
		Free:   vm.Free / size,
	}, nil
}

// PhysicalMemory returns total installed memory in bytes.
func (h *Host) PhysicalMemory() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, errors.Wrap(err, "read physical memory")
	}
	return vm.Total, nil
}

func (h *Host) PageSize() uint64 { return uint64(os.Getpagesize()) }
