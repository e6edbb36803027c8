/*
Package hostname builds the two public endpoint hostnames the operator
publishes onto each BaliusWorker's status: the unauthenticated domain, and
the per-worker domain keyed by that worker's own auth token.
*/
package hostname
