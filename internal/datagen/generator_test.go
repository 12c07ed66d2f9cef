package datagen

import "testing"

func TestDefaultBatchConfig(t *testing.T) {
	cfg := DefaultBatchConfig()
	if cfg.BatchSize != 1000000 {
		t.Errorf("BatchSize = %d, want 1000000", cfg.BatchSize)
	}
	if cfg.ProgressInterval != 100000 {
		t.Errorf("ProgressInterval = %d, want 100000", cfg.ProgressInterval)
	}
}

func TestProgressReporterUpdate(t *testing.T) {
	p := NewProgressReporter("orders", 100, 10)

	crossed := 0
	for i := 0; i < 100; i++ {
		if p.Update(1) {
			crossed++
		}
	}
	if crossed != 10 {
		t.Errorf("crossed %d intervals, want 10", crossed)
	}
	if p.Rows() != 100 {
		t.Errorf("Rows() = %d, want 100", p.Rows())
	}

	// A single large update crosses at most once.
	p = NewProgressReporter("web_events", 1000, 10)
	if !p.Update(500) {
		t.Error("Update(500) should cross an interval")
	}
	if p.Update(5) {
		t.Error("Update(5) from 500 should not cross an interval")
	}
	p.Done()
}

func TestProgressReporterClampsInterval(t *testing.T) {
	p := NewProgressReporter("customers", 3, 0)
	for i := 0; i < 3; i++ {
		if !p.Update(1) {
			t.Errorf("update %d should report with interval 1", i)
		}
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
		{3 * 1024 * 1024 * 1024, "3.00 GB"},
		{2 * 1024 * 1024 * 1024 * 1024, "2.00 TB"},
	}

	for _, tt := range tests {
		if got := FormatSize(tt.bytes); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}
