package types

import "time"

// SystemInfo is the runtime snapshot served to administrators.
type SystemInfo struct {
	AppName      string        `json:"appName"`
	Environment  string        `json:"environment"`
	StartTime    time.Time     `json:"startTime"`
	Uptime       string        `json:"uptime"`
	GoVersion    string        `json:"goVersion"`
	Architecture string        `json:"architecture"`
	OS           string        `json:"os"`
	PID          int           `json:"pid"`
	DBPath       string        `json:"dbPath"`
	Port         string        `json:"port"`
	Database     DatabaseStats `json:"database"`
	Memory       MemoryStats   `json:"memory"`
	Queue        QueueStats    `json:"notificationQueue"`
}

type DatabaseStats struct {
	ProductCount int64 `json:"productCount"`
	OrderCount   int64 `json:"orderCount"`
}

type MemoryStats struct {
	Alloc      uint64  `json:"alloc"`
	Sys        uint64  `json:"sys"`
	NumGC      uint32  `json:"numGC"`
	Goroutines int     `json:"goroutines"`
	AllocMB    float64 `json:"allocMB"`
	SysMB      float64 `json:"sysMB"`
}

// QueueStats reports notification dispatcher counters.
type QueueStats struct {
	Pending int   `json:"pending"`
	Sent    int64 `json:"sent"`
	Failed  int64 `json:"failed"`
	Dropped int64 `json:"dropped"`
	Skipped int64 `json:"skipped"`
}
