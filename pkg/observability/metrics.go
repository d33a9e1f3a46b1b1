package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"

	"nasab-backend/application/ports"
)

// CloudWatchMetrics records application metrics to CloudWatch. Failures
// are logged and swallowed; metrics never fail the surrounding operation.
type CloudWatchMetrics struct {
	client    *cloudwatch.Client
	namespace string
	logger    *zap.Logger
}

// NewCloudWatchMetrics creates a CloudWatch-backed metrics recorder under
// the given namespace, e.g. "Nasab/production".
func NewCloudWatchMetrics(client *cloudwatch.Client, namespace string, logger *zap.Logger) ports.MetricsRecorder {
	return &CloudWatchMetrics{
		client:    client,
		namespace: namespace,
		logger:    logger,
	}
}

// IncrementCounter records a count metric.
func (m *CloudWatchMetrics) IncrementCounter(ctx context.Context, name string, value float64) {
	m.put(ctx, name, value, types.StandardUnitCount)
}

// RecordGauge records an instantaneous value.
func (m *CloudWatchMetrics) RecordGauge(ctx context.Context, name string, value float64) {
	m.put(ctx, name, value, types.StandardUnitNone)
}

func (m *CloudWatchMetrics) put(ctx context.Context, name string, value float64, unit types.StandardUnit) {
	input := &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(m.namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(name),
				Value:      aws.Float64(value),
				Unit:       unit,
				Timestamp:  aws.Time(time.Now()),
			},
		},
	}

	if _, err := m.client.PutMetricData(ctx, input); err != nil {
		m.logger.Debug("failed to record metric",
			zap.String("metric", name),
			zap.Error(err),
		)
	}
}

// NoopMetrics discards all metrics. Used when metrics are disabled.
type NoopMetrics struct{}

func (NoopMetrics) IncrementCounter(ctx context.Context, name string, value float64) {}

func (NoopMetrics) RecordGauge(ctx context.Context, name string, value float64) {}
