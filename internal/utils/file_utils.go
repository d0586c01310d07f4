package utils

import (
	"os"
	"path/filepath"
	"time"

	"homeinsight-listings/pkg/metrics"
)

// ReadFile reads path and records the duration under operation.
func ReadFile(path, operation string) ([]byte, error) {
	start := time.Now()
	data, err := os.ReadFile(path)
	metrics.FileOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.FileErrorsTotal.WithLabelValues(operation).Inc()
		return nil, err
	}
	return data, nil
}

// WriteFile writes data to path atomically: a sibling temp file is written
// first then renamed over the target. Parent directories are created.
func WriteFile(path, operation string, data []byte) error {
	start := time.Now()
	err := writeAtomic(path, data)
	metrics.FileOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.FileErrorsTotal.WithLabelValues(operation).Inc()
	}
	return err
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
