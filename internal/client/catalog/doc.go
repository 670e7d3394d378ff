// Package catalog serves cuisines and restaurants from GET /cuisines.
//
// The backend returns the whole catalog in one payload keyed by cuisine id,
// each with open and closed restaurant lists. Service fetches it through a
// Fetcher, caches it in SQLite for a TTL, and derives the cuisine list,
// per-cuisine restaurant pages and restaurant details from it. Timeouts and
// 5xx responses are retried with exponential backoff; when the fetch still
// fails, a stale cached payload is served instead.
package catalog
