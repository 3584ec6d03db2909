// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

/*
Package fetch retrieves the upstream cell export files over HTTP.

It wraps the HTTP client in a circuit breaker so a prolonged upstream
outage stops hammering the endpoint between scheduler ticks, and retries
transient failures a bounded number of times before giving up. A 404 on
a diff URL is treated as a distinct, non-retryable condition: the day's
diff has not been published yet.
*/
package fetch
