// Package config loads the decoder pipeline's runtime settings from a JSON
// file, following the same os.ReadFile + json.Unmarshal pattern the
// teacher's multi-chain price feed uses for its own config.json.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Config holds every setting named in §6 "Configuration recognized".
type Config struct {
	ConnectTimeoutS              int     `json:"connect_timeout_s"`
	RequestTimeoutS               int     `json:"request_timeout_s"`
	ChannelBuffer                 int     `json:"channel_buffer"`
	MaxDecodingMessageSizeBytes    int     `json:"max_decoding_message_size_bytes"`
	MetricsWindowS                int     `json:"metrics_window_s"`
	MetricsPrintIntervalS          int     `json:"metrics_print_interval_s"`
	SlowProcessingThresholdUs      float64 `json:"slow_processing_threshold_us"`
	ClockCalibrationIntervalS      int     `json:"clock_calibration_interval_s"`
	BlockTimeAdjustmentMs          int     `json:"block_time_adjustment_ms"`
	MaxLatencyThresholdMs          int     `json:"max_latency_threshold_ms"`
}

// Default returns the settings' documented defaults (§6).
func Default() Config {
	return Config{
		ConnectTimeoutS:           10,
		RequestTimeoutS:           60,
		ChannelBuffer:             1000,
		MaxDecodingMessageSizeBytes: 10 * 1024 * 1024,
		MetricsWindowS:            5,
		MetricsPrintIntervalS:     10,
		SlowProcessingThresholdUs: 3000.0,
		ClockCalibrationIntervalS: 300,
		BlockTimeAdjustmentMs:     500,
		MaxLatencyThresholdMs:     1000,
	}
}

// Load reads and parses a JSON config file at path. Any field absent from
// the file keeps its Default() value; a field present in the file, even
// with a zero value, overrides the default.
func Load(path string) (*Config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(file, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// CreateDefault writes the default configuration to path.
func CreateDefault(path string) error {
	cfg := Default()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ConnectTimeout returns ConnectTimeoutS as a time.Duration.
func (c Config) ConnectTimeout() time.Duration { return time.Duration(c.ConnectTimeoutS) * time.Second }

// RequestTimeout returns RequestTimeoutS as a time.Duration.
func (c Config) RequestTimeout() time.Duration { return time.Duration(c.RequestTimeoutS) * time.Second }

// ClockCalibrationInterval returns ClockCalibrationIntervalS as a time.Duration.
func (c Config) ClockCalibrationInterval() time.Duration {
	return time.Duration(c.ClockCalibrationIntervalS) * time.Second
}
