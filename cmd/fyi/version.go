package main

// Reported by "fyi -version". Release builds stamp them with
//
//	-ldflags "-X main.version=$TAG -X main.commit=$(git rev-parse --short HEAD) -X main.date=$(date -u +%F)"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)
