// Package telemetry keeps in-process counters for tool calls and archive
// API failures and renders them in Prometheus text format.
package telemetry

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

var defaultRegistry = newRegistry()

type registry struct {
	mu                  sync.Mutex
	toolCalls           map[string]map[string]int64
	toolDurationBuckets map[string][]int64
	archiveAPIErrors    map[string]map[int]int64
}

func newRegistry() *registry {
	return &registry{
		toolCalls:           make(map[string]map[string]int64),
		toolDurationBuckets: make(map[string][]int64),
		archiveAPIErrors:    make(map[string]map[int]int64),
	}
}

// IncToolCall counts one tool invocation with its outcome status
// (ok, invalid_argument, archive_status, ...).
func IncToolCall(toolName, status string) {
	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()
	if _, ok := defaultRegistry.toolCalls[toolName]; !ok {
		defaultRegistry.toolCalls[toolName] = make(map[string]int64)
	}
	defaultRegistry.toolCalls[toolName][status]++
}

var durationBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60}

// ObserveToolDuration records the wall time of one tool invocation.
func ObserveToolDuration(toolName string, d time.Duration) {
	sec := d.Seconds()

	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()
	if _, ok := defaultRegistry.toolDurationBuckets[toolName]; !ok {
		defaultRegistry.toolDurationBuckets[toolName] = make([]int64, len(durationBuckets)+1)
	}
	idx := len(durationBuckets)
	for i, b := range durationBuckets {
		if sec <= b {
			idx = i
			break
		}
	}
	defaultRegistry.toolDurationBuckets[toolName][idx]++
}

// IncArchiveAPIError counts one non-2xx response from the archive API.
func IncArchiveAPIError(operation string, statusCode int) {
	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()
	if _, ok := defaultRegistry.archiveAPIErrors[operation]; !ok {
		defaultRegistry.archiveAPIErrors[operation] = make(map[int]int64)
	}
	defaultRegistry.archiveAPIErrors[operation][statusCode]++
}

// RenderPrometheus renders every counter in Prometheus text format.
func RenderPrometheus() string {
	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()

	var sb strings.Builder

	sb.WriteString("# TYPE sda_mcp_tool_calls_total counter\n")
	for _, tool := range sortedKeys(defaultRegistry.toolCalls) {
		for _, status := range sortedKeys(defaultRegistry.toolCalls[tool]) {
			sb.WriteString(fmt.Sprintf("sda_mcp_tool_calls_total{tool=%q,status=%q} %d\n", tool, status, defaultRegistry.toolCalls[tool][status]))
		}
	}

	sb.WriteString("# TYPE sda_mcp_tool_duration_seconds_bucket counter\n")
	bucketLabels := []string{"0.1", "0.5", "1", "2", "5", "10", "30", "60", "+Inf"}
	for _, tool := range sortedKeys(defaultRegistry.toolDurationBuckets) {
		for i, v := range defaultRegistry.toolDurationBuckets[tool] {
			sb.WriteString(fmt.Sprintf("sda_mcp_tool_duration_seconds_bucket{tool=%q,le=%q} %d\n", tool, bucketLabels[i], v))
		}
	}

	sb.WriteString("# TYPE sda_mcp_archive_api_errors_total counter\n")
	for _, op := range sortedKeys(defaultRegistry.archiveAPIErrors) {
		statusCodes := make([]int, 0, len(defaultRegistry.archiveAPIErrors[op]))
		for sc := range defaultRegistry.archiveAPIErrors[op] {
			statusCodes = append(statusCodes, sc)
		}
		sort.Ints(statusCodes)
		for _, sc := range statusCodes {
			sb.WriteString(fmt.Sprintf("sda_mcp_archive_api_errors_total{operation=%q,status_code=\"%d\"} %d\n", op, sc, defaultRegistry.archiveAPIErrors[op][sc]))
		}
	}

	return sb.String()
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
