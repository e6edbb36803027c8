/*
Package registry tracks workers that failed to register into the runtime,
so the JSON-RPC dispatcher can short-circuit a request with the
registration failure reason instead of dispatching into a runtime that
never loaded the worker.
*/
package registry
