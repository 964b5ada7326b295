// Package store defines the persistence interfaces the services depend on,
// together with the error vocabulary implementations must speak. Services
// import this package, never a concrete database implementation.
package store
