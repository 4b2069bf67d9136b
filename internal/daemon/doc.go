// Package daemon reruns simulations when the scenario file changes or on a
// fixed schedule.
//
// Triggers from the config watcher and the scheduler feed a Coalescer, which
// runs at most one simulation at a time. Triggers that arrive while a run is
// in progress collapse into a single follow-up run.
package daemon
