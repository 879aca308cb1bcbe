// Package action provides the dispatch framework that routers and leaf
// handlers plug into: category markers, action holders, lifecycle callbacks,
// the Handler contract and a Dispatcher with pluggable transports.
//
// # Core Concepts
//
// An action is any caller-defined value. Actions that implement Categorized
// declare which family of handlers processes them. A Handler declares one
// Category and exposes four operations:
//
//   - Category: the marker the handler supports
//   - Send: start processing an action, reporting lifecycle through a Callback
//   - Cancel: stop an in-flight action
//   - SetCallback: install the default callback sink
//
// Handlers compose: a router is itself a Handler that forwards to other
// Handlers, and decorators such as WithLogging wrap a Handler while keeping
// its Category.
//
// # Quick Start
//
//	var HTTP = action.DefineCategory("http")
//
//	type GithubRepos struct{ Repos []Repo }
//
//	func (GithubRepos) Category() action.Category { return HTTP }
//
//	dispatcher := action.NewDispatcher(
//	    action.WithHandler(githubHandler),
//	    action.WithObserver(action.CallbackFuncs{
//	        Fail: func(h *action.Holder, err error) { log.Println(h.Name(), err) },
//	    }),
//	)
//
//	err := dispatcher.Execute(ctx, &GithubRepos{})
//
// # Lifecycle
//
// The Dispatcher reports OnStart before calling Send. The handler reports
// OnProgress, OnSuccess and OnFail. An error returned synchronously from Send
// is reported by the Dispatcher as OnFail wrapped in ErrInternal, which lets
// observers tell dispatch failures from failures reported by the handler.
//
// # Transports
//
// WithSyncTransport (default) runs Send in the caller's goroutine.
// WithChannelTransport queues actions for a fixed worker pool; call Stop for
// graceful shutdown.
package action
