package cli

import (
	"bytes"
	"testing"

	"github.com/archsketch/archsketch/pkg/diagram"
	"github.com/archsketch/archsketch/pkg/render/dot"
)

func TestBuiltinDocuments(t *testing.T) {
	builtins := builtinDocuments()
	if len(builtins) != 3 {
		t.Fatalf("len(builtinDocuments()) = %d, want 3", len(builtins))
	}

	stems := make(map[string]bool)
	for _, bd := range builtins {
		bd := bd
		t.Run(bd.stem, func(t *testing.T) {
			if stems[bd.stem] {
				t.Errorf("duplicate stem %q", bd.stem)
			}
			stems[bd.stem] = true

			doc, err := bd.build()
			if err != nil {
				t.Fatalf("build = %v", err)
			}
			if doc.State() != diagram.StateBuilding {
				t.Errorf("State() = %v, want %v", doc.State(), diagram.StateBuilding)
			}
			if doc.NodeCount() == 0 {
				t.Error("NodeCount() = 0, want nodes")
			}
			if len(doc.Edges()) == 0 {
				t.Error("Edges() empty, want edges")
			}
			if err := doc.Validate(); err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}

			// Two independent builds must serialize byte-identically.
			again, err := bd.build()
			if err != nil {
				t.Fatalf("second build = %v", err)
			}
			if !bytes.Equal(dot.Marshal(doc), dot.Marshal(again)) {
				t.Error("two builds of the same document serialize differently")
			}
		})
	}
}

func TestCompleteArchitectureShape(t *testing.T) {
	doc, err := buildCompleteArchitecture()
	if err != nil {
		t.Fatal(err)
	}

	if doc.Direction() != diagram.DirectionLR {
		t.Errorf("Direction() = %v, want %v", doc.Direction(), diagram.DirectionLR)
	}

	// The two external actors sit at top level; everything else is clustered.
	wantKeys := []string{
		"amazon_q",
		"shopify",
		"AWS Cloud Infrastructure/api",
		"AWS Cloud Infrastructure/Authentication & Authorization Layer/oauth_lambda",
		"AWS Cloud Infrastructure/Core Application Layer/main_lambda",
		"AWS Cloud Infrastructure/Monitoring & Logging/logs",
	}
	for _, key := range wantKeys {
		if _, ok := doc.Node(key); !ok {
			t.Errorf("Node(%q) not found", key)
		}
	}

	if doc.NodeCount() != 10 {
		t.Errorf("NodeCount() = %d, want 10", doc.NodeCount())
	}
	if len(doc.Edges()) != 16 {
		t.Errorf("len(Edges()) = %d, want 16", len(doc.Edges()))
	}
}

func TestOperationsOverviewFanOut(t *testing.T) {
	doc, err := buildOperationsOverview()
	if err != nil {
		t.Fatal(err)
	}

	// Every lambda logs: the Connect fan-in declares one edge per lambda.
	logsKey := "AWS Storage & Security/logs"
	var logEdges int
	for _, e := range doc.Edges() {
		if e.To == logsKey {
			logEdges++
		}
	}
	if logEdges != 3 {
		t.Errorf("edges into %s = %d, want 3", logsKey, logEdges)
	}

	// Every data endpoint forwards authorized requests to the main handler.
	mainKey := "AWS Lambda Functions/main_lambda"
	var authorized int
	for _, e := range doc.Edges() {
		if e.To == mainKey && e.Label == "Authorized" {
			authorized++
		}
	}
	if authorized != 5 {
		t.Errorf("authorized edges into main handler = %d, want 5", authorized)
	}
}
