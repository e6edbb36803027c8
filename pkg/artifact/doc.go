/*
Package artifact fetches a worker's compiled WASM module bytes from its
registered URL: an "s3://bucket/key" object or an https:// download.
*/
package artifact
