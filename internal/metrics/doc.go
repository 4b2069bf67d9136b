// Package metrics provides run metrics for the simulation engine.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics stay optional and need no nil checks:
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	eng, err := engine.New(cfg, engine.WithObserver(engine.RecorderObserver{Recorder: rec}))
//
// HTTPHandler exposes a registry for scraping; the API server mounts it at
// /metrics.
package metrics
