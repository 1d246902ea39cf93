/*
Package observability provides tools for monitoring the argot parse engine.

NewMetrics builds Prometheus collectors whose Hooks feed them from the engine's
lifecycle events; LogHooks does the same for a structured logger. Both return
domain.LifecycleHooks and can be combined with LifecycleHooks.Merge or by
passing several argot.WithLifecycleHooks options.
*/
package observability
