package bench

import (
	"fmt"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
)

// SysInfo — базовая информация о системе, на которой выполнялись запуски.
type SysInfo struct {
	Platform string
	CPU      string
	RAM      string
}

// ReadSysInfo собирает сведения о платформе; ошибки опроса не фатальны,
// недоступные поля остаются пустыми.
func ReadSysInfo() SysInfo {
	var info SysInfo
	if hostStat, err := host.Info(); err == nil {
		info.Platform = hostStat.Platform
	}
	if cpuStat, err := cpu.Info(); err == nil && len(cpuStat) > 0 {
		info.CPU = cpuStat[0].ModelName
	}
	if vmStat, err := mem.VirtualMemory(); err == nil {
		info.RAM = fmt.Sprintf("%d GB", vmStat.Total/1024/1024/1024)
	}
	return info
}

func (s SysInfo) String() string {
	return fmt.Sprintf("%s, %s, %s", s.Platform, s.CPU, s.RAM)
}
