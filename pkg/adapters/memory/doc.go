/*
Package memory provides an in-process ports.KV backed by github.com/patrickmn/go-cache.

It is meant for tests and single-instance deployments; records do not survive
a restart and are not shared between processes.
*/
package memory
