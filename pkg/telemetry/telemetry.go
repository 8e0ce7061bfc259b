// Package telemetry 记录玩法事件的 OpenTelemetry 指标
//
// 默认使用全局 MeterProvider；未配置 SDK 时全局实现为空操作，
// 因此库的使用者无需关心指标是否启用。
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/gonewx/ghosthustlers/pkg/telemetry"

// 放置来源
const (
	SourcePlane   = "plane"
	SourceRaycast = "raycast"
	SourceRespawn = "respawn"
)

// Metrics 玩法指标
type Metrics struct {
	placements        metric.Int64Counter
	placementFailures metric.Int64Counter
	captures          metric.Int64Counter
	respawns          metric.Int64Counter
	timeToCapture     metric.Float64Histogram
}

// New 使用指定 Meter 创建指标；meter 为 nil 时使用全局 MeterProvider
func New(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		meter = otel.Meter(instrumentationName)
	}

	m := &Metrics{}
	var err error

	if m.placements, err = meter.Int64Counter(
		"ghost.placements",
		metric.WithDescription("Ghosts placed into the scene"),
	); err != nil {
		return nil, fmt.Errorf("failed to create placements counter: %w", err)
	}
	if m.placementFailures, err = meter.Int64Counter(
		"ghost.placement_failures",
		metric.WithDescription("Placements rejected by the host"),
	); err != nil {
		return nil, fmt.Errorf("failed to create placement failures counter: %w", err)
	}
	if m.captures, err = meter.Int64Counter(
		"ghost.captures",
		metric.WithDescription("Ghosts captured"),
	); err != nil {
		return nil, fmt.Errorf("failed to create captures counter: %w", err)
	}
	if m.respawns, err = meter.Int64Counter(
		"ghost.respawns",
		metric.WithDescription("Respawn requests handled"),
	); err != nil {
		return nil, fmt.Errorf("failed to create respawns counter: %w", err)
	}
	if m.timeToCapture, err = meter.Float64Histogram(
		"ghost.time_to_capture",
		metric.WithDescription("Seconds from placement until health reached zero"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("failed to create time to capture histogram: %w", err)
	}

	return m, nil
}

// Noop 返回不记录任何数据的指标
func Noop() *Metrics {
	m, err := New(noop.NewMeterProvider().Meter(instrumentationName))
	if err != nil {
		// noop 实现不会返回错误
		panic(err)
	}
	return m
}

// RecordPlacement 记录一次成功放置
func (m *Metrics) RecordPlacement(source string) {
	m.placements.Add(context.Background(), 1, metric.WithAttributes(attribute.String("source", source)))
}

// RecordPlacementFailure 记录一次宿主放置失败
func (m *Metrics) RecordPlacementFailure(source string) {
	m.placementFailures.Add(context.Background(), 1, metric.WithAttributes(attribute.String("source", source)))
}

// RecordCapture 记录一次捕获及其耗时
func (m *Metrics) RecordCapture(encounterSeconds float64) {
	ctx := context.Background()
	m.captures.Add(ctx, 1)
	m.timeToCapture.Record(ctx, encounterSeconds)
}

// RecordRespawn 记录一次重生
func (m *Metrics) RecordRespawn(placedImmediately bool) {
	m.respawns.Add(context.Background(), 1, metric.WithAttributes(attribute.Bool("placed", placedImmediately)))
}
