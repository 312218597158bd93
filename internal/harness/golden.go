package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/Preyvik/MCP-UiPath/internal/ir"
)

// snapshotValue builds the IR payload written to a scenario's golden
// file: the scenario name, the validation report, and the converted
// document when one was produced. A rejected conversion snapshots the
// report alone.
func snapshotValue(scenario *Scenario, result *Result) ir.IRObject {
	payload := ir.IRObject{
		"scenario": ir.IRString(scenario.Name),
	}
	if result.Report != nil {
		payload["report"] = result.Report.Value()
	}
	if result.Write != nil && result.Write.Document != nil {
		payload["document"] = result.Write.Document
	}
	return payload
}

// RunWithGolden executes a scenario and compares its canonical
// snapshot against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// The snapshot serializes through MarshalCanonical, so byte equality
// against the golden file is a full determinism check: same key order,
// same escaping, same normalization on every run.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	if err := AssertGolden(t, scenario.Name, snapshotValue(scenario, result)); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an IR payload against a golden file. Useful
// when the payload was built by hand rather than by a scenario run.
func AssertGolden(t *testing.T, name string, payload ir.IRObject) error {
	t.Helper()

	data, err := ir.MarshalCanonical(payload)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)

	return nil
}
