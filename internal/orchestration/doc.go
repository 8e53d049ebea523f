// Package orchestration runs comparison sweeps: the cross product of
// reduction strategies and backends over one shared workload, each run
// behind a timeout watchdog, followed by an agreement check against the
// serial reference. Presentation is decoupled through the Observer and
// ResultPresenter interfaces.
package orchestration
