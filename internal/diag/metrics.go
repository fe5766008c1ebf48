package diag

import (
	"github.com/prometheus/client_golang/prometheus"
)

// 进程内指标（私有 Registry，不注册到全局默认 Registry）：
// - flatcfg_op_total{comp,stage,result}
// - flatcfg_error_total{comp,code}
// - flatcfg_op_duration_ms{comp,stage}
var (
	registry = prometheus.NewRegistry()

	opTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "flatcfg_op_total",
		Help: "Total number of operations, by component, stage and result.",
	}, []string{"comp", "stage", "result"})

	errorTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "flatcfg_error_total",
		Help: "Total number of errors, by component and error code.",
	}, []string{"comp", "code"})

	opDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "flatcfg_op_duration_ms",
		Help:    "Operation duration in milliseconds.",
		Buckets: []float64{1, 5, 10, 50, 100, 500, 1000},
	}, []string{"comp", "stage"})
)

func init() {
	registry.MustRegister(opTotal, errorTotal, opDuration)
}

// IncOp 累加操作计数（result=success|error）。
func IncOp(comp, stage, result string) {
	opTotal.WithLabelValues(comp, stage, result).Inc()
}

// IncError 按分类累加错误计数。
func IncError(comp, code string) {
	errorTotal.WithLabelValues(comp, code).Inc()
}

// ObserveDuration 记录阶段耗时（毫秒）。
func ObserveDuration(comp, stage string, durMS int64) {
	opDuration.WithLabelValues(comp, stage).Observe(float64(durMS))
}

// Gatherer 暴露指标采集器。
func Gatherer() prometheus.Gatherer { return registry }

// WriteMetrics 以 node_exporter textfile 格式原子写出指标。
func WriteMetrics(path string) error {
	return prometheus.WriteToTextfile(path, registry)
}
