package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/BonnyAD9/stick-ants/internal/rod"
)

func TestLiveRendererDraw(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, 10)

	r.OnTick(rod.Snapshot{
		Ants: []rod.AntView{
			{Position: 0.15, Kind: rod.Plain},
			{Position: 0.55, Kind: rod.Molly},
		},
		Tick: 3,
		Time: 0.003,
	})

	out := buf.String()
	if !strings.HasPrefix(out, rewind) {
		t.Error("frame should rewind over the previous one")
	}
	if strings.Count(out, "●") != 2 {
		t.Errorf("expected 2 ants drawn, got %d", strings.Count(out, "●"))
	}
	if !strings.Contains(out, cellMolly) {
		t.Error("molly cell missing")
	}
	if !strings.Contains(out, "time: 0.3s") {
		t.Errorf("time footer missing in %q", out)
	}
}

func TestLiveRendererClampsResolution(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, 0)
	if len(r.cells) != 1 {
		t.Errorf("expected 1 cell, got %d", len(r.cells))
	}
}
