package service

// MetricsRecorder 业务指标的记录接口，由 observability.Metrics 实现
type MetricsRecorder interface {
	RecordCaptcha(purpose string)
	RecordBooking(action string, err error)
}

type noopMetrics struct{}

func (noopMetrics) RecordCaptcha(string)        {}
func (noopMetrics) RecordBooking(string, error) {}

func orNoop(m MetricsRecorder) MetricsRecorder {
	if m == nil {
		return noopMetrics{}
	}
	return m
}
