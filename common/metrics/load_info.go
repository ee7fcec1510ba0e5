package metrics

import (
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// LoadInfo 负载信息，/health 接口直接返回
type LoadInfo struct {
	Evaluations uint64  `json:"evaluations"` // 累计计算次数
	CacheHits   uint64  `json:"cacheHits"`
	CacheMisses uint64  `json:"cacheMisses"`
	Goroutines  int     `json:"goroutines"`
	RSS         uint64  `json:"rss"`      // 进程常驻内存（字节）
	CPUUsage    float64 `json:"cpuUsage"` // 进程 CPU 使用率（0-100）
	MemUsage    float64 `json:"memUsage"` // 进程内存占系统总内存（0-100）
	Load        float64 `json:"load"`
}

// Snapshot 采集进程指标，gopsutil 取不到的项保持为 0
func Snapshot(evaluations, cacheHits, cacheMisses uint64) *LoadInfo {
	li := &LoadInfo{
		Evaluations: evaluations,
		CacheHits:   cacheHits,
		CacheMisses: cacheMisses,
		Goroutines:  runtime.NumGoroutine(),
	}

	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if cpu, err := p.CPUPercent(); err == nil {
			li.CPUUsage = clampPercent(cpu)
		}
		if mi, err := p.MemoryInfo(); err == nil {
			li.RSS = mi.RSS
		}
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm.Total > 0 {
		li.MemUsage = clampPercent(float64(li.RSS) / float64(vm.Total) * 100.0)
	}
	li.Load = li.CalculateLoad()
	return li
}

// CalculateLoad 综合负载评分，越小越空闲
// 权重：CPU 50%、内存 30%、缓存未命中率 20%
func (li *LoadInfo) CalculateLoad() float64 {
	missRate := 0.0
	if total := li.CacheHits + li.CacheMisses; total > 0 {
		missRate = float64(li.CacheMisses) / float64(total) * 100.0
	}
	return li.CPUUsage*0.5 + li.MemUsage*0.3 + missRate*0.2
}

func clampPercent(v float64) float64 {
	if v > 100.0 {
		return 100.0
	}
	if v < 0.0 {
		return 0.0
	}
	return v
}
