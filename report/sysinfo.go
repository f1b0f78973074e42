// SPDX-License-Identifier: MIT

package report

import (
	"fmt"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
)

const unknown = "unknown"

// SysInfo is the machine a report was produced on.
type SysInfo struct {
	Platform string `json:"platform"`
	CPU      string `json:"cpu"`
	RAM      string `json:"ram"`
}

// CollectSysInfo reads host details. Any lookup that fails reports "unknown".
func CollectSysInfo() SysInfo {
	si := SysInfo{Platform: unknown, CPU: unknown, RAM: unknown}
	if h, err := host.Info(); err == nil && h.Platform != "" {
		si.Platform = h.Platform
	}
	if c, err := cpu.Info(); err == nil && len(c) > 0 && c[0].ModelName != "" {
		si.CPU = c[0].ModelName
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm.Total > 0 {
		si.RAM = fmt.Sprintf("%d GB", vm.Total/1024/1024/1024)
	}
	return si
}
