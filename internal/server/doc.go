// Package server exposes compat tables over HTTP.
//
// Routes:
//
//	GET /tables/{query}?depth=&renderer=&for=&locale=&standalone=
//	GET /features?q=&limit=
//	GET /assets/compattable.css
//	GET /healthz
//
// One decoded dataset is shared by every request; renders never mutate it.
package server
