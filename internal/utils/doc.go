// Package utils provides shared low-level helpers: a synchronous JSON POST
// round-trip with typed failures ([DoPostSync]), pointer construction
// ([Ptr]) and string truncation for log output ([TruncateString]).
package utils
