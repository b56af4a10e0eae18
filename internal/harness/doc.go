// Package harness runs ladder scenarios as executable contract tests.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	ladder:                  # a fixed board, or
//	  columns: 3
//	  levels: 1
//	  rungs:
//	    - { level: 0, leftColumn: 0 }
//	ladder_file: board.cue   # a board on disk (relative to the scenario), or
//	generate:                # a generated board
//	  columns: 5
//	  levels: 0
//	  rungDensity: 0         # or autoDensity: true
//	  seed: 1
//	traces:
//	  - start: 0
//	    end: 1
//	    path: [{x: 0, y: 0}, {x: 1, y: 0}, {x: 1, y: 1}]
//	assertions:
//	  - type: disjoint
//	  - type: levels
//	    value: 15
//
// Exactly one of ladder, ladder_file and generate must be given.
//
// # Assertion Types
//
//   - disjoint: no two rungs at one level share a column
//   - permutation: start to final column is a bijection
//   - identity: every token ends where it started
//   - path_length: every path has between levels+1 and 2*levels+1 waypoints
//   - levels: the board has exactly value levels
//   - rung_count: the board has exactly value rungs
//   - bottom: the result labels equal labels
//   - winners: exactly value results carry the win label
//
// # Deterministic Testing
//
// Generated boards always use the scenario's seed, so a scenario produces
// the same board, the same paths and the same golden snapshot on every run.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/three_column.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := harness.Run(scenario)
//	if !result.Pass {
//	    for _, e := range result.Errors {
//	        log.Println(e)
//	    }
//	}
package harness
