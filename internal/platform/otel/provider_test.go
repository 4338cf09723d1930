package otel

import (
	"context"
	"strings"
	"testing"
)

func TestSetupNoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("BOOKINGS_OTEL_ENDPOINT", "")
	t.Setenv("BOOKINGS_OTEL_ENABLED", "")

	shutdown, err := Setup(context.Background(), "bookings-test")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestSetupNoopWhenExplicitlyDisabled(t *testing.T) {
	t.Setenv("BOOKINGS_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("BOOKINGS_OTEL_ENABLED", "false")

	shutdown, err := Setup(context.Background(), "bookings-test")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestSetupRejectsMalformedFlag(t *testing.T) {
	t.Setenv("BOOKINGS_OTEL_ENABLED", "sometimes")

	if _, err := Setup(context.Background(), "bookings-test"); err == nil {
		t.Fatal("expected config error")
	}
}

func TestSetupWithConfigCreatesProvider(t *testing.T) {
	// Non-routable address so nothing is exported.
	shutdown, err := SetupWithConfig(context.Background(), "bookings-test", Config{
		Endpoint:    "http://192.0.2.1:4318",
		Enabled:     true,
		SampleRatio: 0.5,
	})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestConfigActive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{name: "endpoint and enabled", cfg: Config{Endpoint: "http://collector:4318", Enabled: true}, want: true},
		{name: "disabled", cfg: Config{Endpoint: "http://collector:4318"}, want: false},
		{name: "blank endpoint", cfg: Config{Endpoint: "  ", Enabled: true}, want: false},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.cfg.Active(); got != tc.want {
				t.Fatalf("Active() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSamplerFollowsRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		ratio float64
		want  string
	}{
		{name: "full", ratio: 1, want: "root:AlwaysOnSampler"},
		{name: "above one", ratio: 2, want: "root:AlwaysOnSampler"},
		{name: "zero", ratio: 0, want: "root:AlwaysOffSampler"},
		{name: "negative", ratio: -0.5, want: "root:AlwaysOffSampler"},
		{name: "half", ratio: 0.5, want: "root:TraceIDRatioBased{0.5}"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := sampler(tc.ratio).Description(); !strings.Contains(got, tc.want) {
				t.Fatalf("sampler(%v) = %q, want to contain %q", tc.ratio, got, tc.want)
			}
		})
	}
}
