// meta/meta.go
package meta

import "time"

// Tuning defaults for the Monte Carlo searcher, used by the CLI.

// MIN_ALTERNATES is the floor of sampled worlds before the time budget
// may stop a decision.
const MIN_ALTERNATES = 5

// MAX_ALTERNATES caps the sampled worlds per decision.
const MAX_ALTERNATES = 2000

// TIME_BUDGET is the soft wall-clock deadline per decision.
const TIME_BUDGET = time.Second / 3

// DEALS is the default number of deals per match.
const DEALS = 10
