// Package server exposes the parser over HTTP with gin.
//
// Routes:
//
//	POST /parse     parse a model response sent as raw text or {"response": "..."}
//	POST /chat      forward a message to the agent backend and parse its reply
//	POST /sessions  create a backend session
//	GET  /health    local and backend health
package server
