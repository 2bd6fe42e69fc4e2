// Package auth contains the login check applied to every request of the web service.
//
// Requests to static files, uploads, the health check, metrics and logout pass
// unauthenticated. Everything else needs a valid session cookie: pages redirect
// to the login page, API requests are answered with 401.
package auth
