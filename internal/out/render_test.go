package out

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/swapsage/swapsage-cli/internal/config"
	"github.com/swapsage/swapsage-cli/internal/model"
)

func TestRenderJSONEnvelope(t *testing.T) {
	var buf bytes.Buffer
	env := model.Envelope{Version: model.EnvelopeVersion, Success: true, Data: map[string]any{"x": 1}}
	err := Render(&buf, env, config.Settings{OutputMode: "json"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded["success"] != true {
		t.Fatalf("unexpected envelope: %v", decoded)
	}
}

func TestRenderResultsOnlyProjectsFields(t *testing.T) {
	var buf bytes.Buffer
	env := model.Envelope{Success: true, Data: []any{
		map[string]any{"id": "a", "slippage": 0.5, "gas": "21000"},
		map[string]any{"id": "b", "slippage": 1.0, "gas": "22000"},
	}}
	settings := config.Settings{OutputMode: "json", ResultsOnly: true, SelectFields: []string{"id", "slippage"}}
	if err := Render(&buf, env, settings); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(buf.String(), "gas") {
		t.Fatalf("projection should drop gas: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "slippage") {
		t.Fatalf("projection should keep slippage: %s", buf.String())
	}
}

func TestRenderPlainStructData(t *testing.T) {
	var buf bytes.Buffer
	env := model.Envelope{Success: true, Data: model.QuoteRisk{PriceImpactBps: 120, Slippage: "medium"}}
	settings := config.Settings{OutputMode: "plain", ResultsOnly: true}
	if err := Render(&buf, env, settings); err != nil {
		t.Fatalf("render: %v", err)
	}
	line := buf.String()
	if !strings.Contains(line, "price_impact_bps=120") || !strings.Contains(line, "slippage=medium") {
		t.Fatalf("unexpected plain output: %s", line)
	}
}
