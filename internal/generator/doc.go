// Package generator synthesizes a classroom attendance dataset.
//
// Every school day in the configured calendar window gets one record per
// student. A student's presence probability p starts from a weekday base
// rate (lower on Mondays and Fridays) and drops for the skipper cohort
// (every tenth student). Status is drawn as Present with p, Absent with
// 0.7(1-p) and Late with 0.3(1-p). Tuesday and Thursday sessions are Labs
// 30% of the time.
//
// Generation is deterministic for a given Config.Seed.
package generator
