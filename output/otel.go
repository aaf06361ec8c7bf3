package output

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ark-forge/mcp-eu-ai-act/config"
	"github.com/ark-forge/mcp-eu-ai-act/logger"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	otelLog "go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
)

type otelLogger struct {
	provider *sdklog.LoggerProvider
	logger   otelLog.Logger
	timeout  time.Duration
	endpoint string
	policy   otelPolicy
}

type otelPolicy struct {
	includePaths bool
}

func newOtelLogger(cfg *config.Config) (*otelLogger, error) {
	if cfg == nil {
		return nil, nil
	}
	endpoint := resolveOtelEndpoint(cfg)
	if endpoint == "" {
		return nil, nil
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		return nil, fmt.Errorf("otel endpoint must include scheme (http or https)")
	}

	opts := []otlploghttp.Option{otlploghttp.WithEndpointURL(endpoint)}
	if len(cfg.OtelHeaders) > 0 {
		opts = append(opts, otlploghttp.WithHeaders(cfg.OtelHeaders))
	}
	if cfg.OtelTimeout > 0 {
		opts = append(opts, otlploghttp.WithTimeout(cfg.OtelTimeout))
	}

	exp, err := otlploghttp.New(context.Background(), opts...)
	if err != nil {
		return nil, err
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(cfg.OtelServiceName),
	)
	provider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exp)),
		sdklog.WithResource(res),
	)

	return &otelLogger{
		provider: provider,
		logger:   provider.Logger("aiact"),
		timeout:  cfg.OtelTimeout,
		endpoint: endpoint,
		policy:   otelPolicy{includePaths: cfg.OtelExportPaths},
	}, nil
}

func resolveOtelEndpoint(cfg *config.Config) string {
	if cfg == nil {
		return ""
	}
	if endpoint := strings.TrimSpace(cfg.OtelEndpoint); endpoint != "" {
		return endpoint
	}
	if !cfg.OtelFromEnv {
		return ""
	}
	if endpoint := strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_LOGS_ENDPOINT")); endpoint != "" {
		return endpoint
	}
	return strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
}

func (o *otelLogger) Emit(recordType string, payload any) {
	if o == nil || o.logger == nil {
		return
	}
	data := sanitizePayload(payloadToMap(payload), o.policy)

	now := time.Now()
	var record otelLog.Record
	record.SetTimestamp(now)
	record.SetObservedTimestamp(now)
	record.SetEventName("aiact.result")
	record.AddAttributes(
		otelLog.String("record_type", recordType),
		otelLog.String("schema_version", SchemaVersion),
	)
	if attrs := semanticAttributes(recordType, data, o.policy); len(attrs) > 0 {
		record.AddAttributes(attrs...)
	}
	if data != nil {
		record.SetBody(toLogValue(data))
	}

	o.logger.Emit(context.Background(), record)
}

func (o *otelLogger) Shutdown() {
	if o == nil || o.provider == nil {
		return
	}
	timeout := o.timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := o.provider.Shutdown(ctx); err != nil {
		logger.Debugf("OTEL shutdown failed: %v", err)
	}
}

// pathKeys hold file system locations.
var pathKeys = map[string]bool{
	"project_path": true,
	"file":         true,
	"via":          true,
}

// fileIndexKeys map categories to file lists; without paths only the counts
// are kept.
var fileIndexKeys = map[string]bool{
	"detected_models":   true,
	"detected_patterns": true,
}

// sanitizePayload returns a copy of data without project paths unless the
// policy allows them. data itself is never modified.
func sanitizePayload(data map[string]any, policy otelPolicy) map[string]any {
	if data == nil || policy.includePaths {
		return data
	}
	out := make(map[string]any, len(data))
	for k, v := range data {
		switch {
		case pathKeys[k]:
			continue
		case fileIndexKeys[k]:
			if idx, ok := v.(map[string]any); ok {
				counts := make(map[string]any, len(idx))
				for cat, files := range idx {
					if list, ok := files.([]any); ok {
						counts[cat] = len(list)
					}
				}
				out[k] = counts
				continue
			}
			out[k] = v
		default:
			out[k] = sanitizeValue(v, policy)
		}
	}
	return out
}

func sanitizeValue(v any, policy otelPolicy) any {
	switch t := v.(type) {
	case map[string]any:
		return sanitizePayload(t, policy)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = sanitizeValue(item, policy)
		}
		return out
	default:
		return v
	}
}

func payloadToMap(payload any) map[string]any {
	if m, ok := payload.(map[string]any); ok {
		return m
	}
	data, err := jsonMarshal(payload)
	if err != nil {
		return nil
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil
	}
	return decoded
}

func toLogValue(value any) otelLog.Value {
	switch v := value.(type) {
	case nil:
		return otelLog.Value{}
	case string:
		return otelLog.StringValue(v)
	case bool:
		return otelLog.BoolValue(v)
	case int:
		return otelLog.IntValue(v)
	case int64:
		return otelLog.Int64Value(v)
	case float64:
		return otelLog.Float64Value(v)
	case map[string]any:
		kvs := make([]otelLog.KeyValue, 0, len(v))
		for key, item := range v {
			kvs = append(kvs, otelLog.KeyValue{Key: key, Value: toLogValue(item)})
		}
		return otelLog.MapValue(kvs...)
	case []any:
		values := make([]otelLog.Value, 0, len(v))
		for _, item := range v {
			values = append(values, toLogValue(item))
		}
		return otelLog.SliceValue(values...)
	default:
		return otelLog.StringValue(fmt.Sprint(v))
	}
}

func semanticAttributes(recordType string, data map[string]any, policy otelPolicy) []otelLog.KeyValue {
	if len(data) == 0 {
		return nil
	}
	var kvs []otelLog.KeyValue
	if policy.includePaths {
		kvs = appendStringAttr(kvs, string(semconv.FileDirectoryKey), getStringField(data, "project_path"))
	}
	switch recordType {
	case KindScan, KindGDPR:
		kvs = appendInt64Field(kvs, "aiact.files_scanned", data, "files_scanned")
		kvs = appendCountAttr(kvs, "aiact.categories_count", mapLength(data, "detected_models")+mapLength(data, "detected_patterns"))
		kvs = appendCountAttr(kvs, "aiact.propagated_files_count", sliceLength(data, "propagated_files"))
	case KindCompliance:
		kvs = appendStringAttr(kvs, "aiact.risk_category", getStringField(data, "risk_category"))
		kvs = appendStringAttr(kvs, "aiact.compliance_score", getStringField(data, "compliance_score"))
		kvs = appendFloat64Field(kvs, "aiact.compliance_percentage", data, "compliance_percentage")
	case KindReport:
		kvs = appendStringAttr(kvs, "aiact.report_id", getStringField(data, "report_id"))
		kvs = appendStringAttr(kvs, "aiact.fingerprint", getStringField(data, "fingerprint"))
		if summary, ok := data["compliance_summary"].(map[string]any); ok {
			kvs = appendStringAttr(kvs, "aiact.risk_category", getStringField(summary, "risk_category"))
			kvs = appendFloat64Field(kvs, "aiact.compliance_percentage", summary, "compliance_percentage")
		}
	case KindCombined:
		kvs = appendStringAttr(kvs, "aiact.risk_category", getStringField(data, "risk_category"))
		if summary, ok := data["summary"].(map[string]any); ok {
			for _, p := range []string{"critical", "high", "medium", "low"} {
				kvs = appendInt64Field(kvs, "aiact.overlap."+p, summary, p)
			}
		}
	case KindError:
		kvs = appendStringAttr(kvs, "aiact.error", getStringField(data, "error"))
	}
	return kvs
}

func getStringField(values map[string]any, key string) string {
	value, ok := values[key]
	if !ok || value == nil {
		return ""
	}
	if str, ok := value.(string); ok {
		return str
	}
	return fmt.Sprint(value)
}

func getInt64Field(values map[string]any, key string) (int64, bool) {
	switch v := values[key].(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		return int64(v), true
	}
	return 0, false
}

func getFloat64Field(values map[string]any, key string) (float64, bool) {
	switch v := values[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

func sliceLength(values map[string]any, key string) int64 {
	if list, ok := values[key].([]any); ok {
		return int64(len(list))
	}
	return 0
}

func mapLength(values map[string]any, key string) int64 {
	if m, ok := values[key].(map[string]any); ok {
		return int64(len(m))
	}
	return 0
}

func appendStringAttr(kvs []otelLog.KeyValue, key, value string) []otelLog.KeyValue {
	if value == "" {
		return kvs
	}
	return append(kvs, otelLog.String(key, value))
}

func appendInt64Field(kvs []otelLog.KeyValue, key string, values map[string]any, field string) []otelLog.KeyValue {
	value, ok := getInt64Field(values, field)
	if !ok {
		return kvs
	}
	return append(kvs, otelLog.Int64(key, value))
}

func appendFloat64Field(kvs []otelLog.KeyValue, key string, values map[string]any, field string) []otelLog.KeyValue {
	value, ok := getFloat64Field(values, field)
	if !ok {
		return kvs
	}
	return append(kvs, otelLog.Float64(key, value))
}

func appendCountAttr(kvs []otelLog.KeyValue, key string, count int64) []otelLog.KeyValue {
	if count <= 0 {
		return kvs
	}
	return append(kvs, otelLog.Int64(key, count))
}
