// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation through X-API-Key or a bearer token.
//   - rayid: a request id (RayID) stored in the request locals and echoed in the
//     X-Ray-ID response header, so request logs and run logs can be correlated.
package middleware
