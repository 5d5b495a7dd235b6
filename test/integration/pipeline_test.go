// Package integration drives the judge protocol end to end: register,
// select a problem against an in-process mock server, explore a few
// plans, fetch the hidden layout via the mock server's spoiler route,
// submit it as a guess, and export the accepted layout.
package integration

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dshills/aedificium/pkg/aedificium"
	"github.com/dshills/aedificium/pkg/export"
	"github.com/dshills/aedificium/pkg/judge"
	"github.com/dshills/aedificium/pkg/mockserver"
)

func TestRegisterSelectExploreGuessExport(t *testing.T) {
	srv := httptest.NewServer(mockserver.New(nil).Router())
	defer srv.Close()

	c := judge.NewClient(srv.URL, 5*time.Second)

	id, err := c.Register(context.Background(), "team", "Go", "team@example.com")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if id == "" {
		t.Fatal("Register returned an empty id")
	}

	if _, err := c.Select(context.Background(), "random_full_3_1_42"); err != nil {
		t.Fatalf("Select: %v", err)
	}

	var plans []string
	for door := 0; door < aedificium.Doors; door++ {
		plans = append(plans, aedificium.FormatPlan([]aedificium.Token{{Kind: aedificium.TokenMove, Value: door}}))
	}
	exploreResult, err := c.Explore(context.Background(), plans)
	if err != nil {
		t.Fatalf("Explore: %v", err)
	}
	if len(exploreResult.Results) != len(plans) {
		t.Fatalf("got %d explore results, want %d", len(exploreResult.Results), len(plans))
	}
	if exploreResult.QueryCount != len(plans)+1 {
		t.Fatalf("QueryCount = %d, want %d", exploreResult.QueryCount, len(plans)+1)
	}

	layout, err := c.Spoiler(context.Background())
	if err != nil {
		t.Fatalf("Spoiler: %v", err)
	}
	if layout.N() != 3 {
		t.Fatalf("spoiled layout N() = %d, want 3", layout.N())
	}

	guessResult, err := c.Guess(context.Background(), layout)
	if err != nil {
		t.Fatalf("Guess: %v", err)
	}
	if !guessResult.Correct {
		t.Fatalf("Guess.Correct = false, want true: %s", guessResult.Reason)
	}

	jsonData, err := export.ExportJSON(layout)
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	var roundTripped aedificium.Aedificium
	if err := json.Unmarshal(jsonData, &roundTripped); err != nil {
		t.Fatalf("unmarshaling exported JSON: %v", err)
	}
	if err := roundTripped.Build(); err != nil {
		t.Fatalf("exported JSON does not describe a valid layout: %v", err)
	}

	svgData, err := export.ExportSVG(layout, export.DefaultSVGOptions())
	if err != nil {
		t.Fatalf("ExportSVG: %v", err)
	}
	if len(svgData) == 0 {
		t.Fatal("expected non-empty SVG output")
	}
}

func TestSelectAgainResetsSession(t *testing.T) {
	srv := httptest.NewServer(mockserver.New(nil).Router())
	defer srv.Close()

	c := judge.NewClient(srv.URL, 5*time.Second)
	if _, err := c.Register(context.Background(), "team", "Go", "team@example.com"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := c.Select(context.Background(), "probatio"); err != nil {
		t.Fatalf("first Select: %v", err)
	}
	if _, err := c.Explore(context.Background(), []string{"0"}); err != nil {
		t.Fatalf("Explore against first problem: %v", err)
	}

	if _, err := c.Select(context.Background(), "primus"); err != nil {
		t.Fatalf("second Select: %v", err)
	}
	layout, err := c.Spoiler(context.Background())
	if err != nil {
		t.Fatalf("Spoiler after reselect: %v", err)
	}
	if layout.N() != 6 {
		t.Fatalf("layout N() = %d, want 6 after selecting primus", layout.N())
	}
}
