package common

// Version is overridden at build time via -ldflags "-X ...common.Version=<tag>".
var Version = "dev"

const (
	PackageName = "github.com/likecoin/likerid-ens-gateway"

	// MetricsNamespace prefixes every exported Prometheus series.
	MetricsNamespace = "ens_gateway"
)
