package metric

import (
	"strings"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestConnectionCollector_TracksLiveCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewConnectionCollector()
	reg.MustRegister(c)

	var inFlight atomic.Int64
	c.Track(&inFlight)
	inFlight.Store(3)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}

	var found bool
	for _, mf := range mfs {
		if mf.GetName() != "rekv_connections_active" {
			continue
		}
		found = true
		if got := mf.GetMetric()[0].GetGauge().GetValue(); got != 3 {
			t.Errorf("rekv_connections_active = %v, want 3", got)
		}
	}
	if !found {
		t.Fatal("rekv_connections_active not present in gathered metrics")
	}
}

func TestConnectionCollector_Describe(t *testing.T) {
	c := NewConnectionCollector()
	ch := make(chan *prometheus.Desc, 1)
	c.Describe(ch)
	close(ch)

	desc := <-ch
	if !strings.Contains(desc.String(), "rekv_connections_active") {
		t.Errorf("Describe() = %v, want it to mention rekv_connections_active", desc)
	}
}
