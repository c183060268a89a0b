package flags

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/likecoin/likerid-ens-gateway/api"
	"github.com/likecoin/likerid-ens-gateway/common"
	"github.com/urfave/cli/v2"
)

func SetupLogger(cCtx *cli.Context) (log *slog.Logger) {
	logJSON := cCtx.Bool(LogJsonFlag.Name)
	logDebug := cCtx.Bool(LogDebugFlag.Name)
	logUID := cCtx.Bool(LogUidFlag.Name)
	logService := cCtx.String("log-service")

	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   logDebug,
		JSON:    logJSON,
		Service: logService,
		Version: common.Version,
	})

	if logUID {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}

func ConfigureServer(cCtx *cli.Context, logger *slog.Logger, listenAddr string) *api.HTTPServerConfig {
	metricsAddr := cCtx.String(MetricsAddrFlag.Name)
	enablePprof := cCtx.Bool(PprofFlag.Name)
	drainDuration := time.Duration(cCtx.Int64(DrainSecondsFlag.Name)) * time.Second

	return &api.HTTPServerConfig{
		ListenAddr:               listenAddr,
		MetricsAddr:              metricsAddr,
		Log:                      logger,
		EnablePprof:              enablePprof,
		RateLimit:                cCtx.String(RateLimitFlag.Name),
		DrainDuration:            drainDuration,
		GracefulShutdownDuration: 30 * time.Second,
		ReadTimeout:              60 * time.Second,
		WriteTimeout:             30 * time.Second,
	}
}

// ListenAddr is --listen-addr when set, otherwise all interfaces on --port.
func ListenAddr(cCtx *cli.Context) string {
	if addr := cCtx.String(ListenAddrFlag.Name); addr != "" {
		return addr
	}
	return fmt.Sprintf(":%d", cCtx.Int(PortFlag.Name))
}

var PrivateKeyFlag = &cli.StringFlag{
	Name:     "private-key",
	Aliases:  []string{"k"},
	Required: true,
	EnvVars:  []string{"SIGNER_PRIVATE_KEY"},
	Usage:    "hex encoded signing key, or @path to a file holding one",
}

var DevelopmentFlag = &cli.BoolFlag{
	Name:    "development",
	Aliases: []string{"D"},
	Value:   false,
	Usage:   "resolve against the rinkeby (testnet) identity service",
}

var TTLFlag = &cli.Uint64Flag{
	Name:    "ttl",
	Aliases: []string{"t"},
	Value:   300,
	Usage:   "seconds a signed response stays valid",
}

var PortFlag = &cli.IntFlag{
	Name:    "port",
	Aliases: []string{"p"},
	Value:   8080,
	Usage:   "port to listen on",
}

var ListenAddrFlag = &cli.StringFlag{
	Name:  "listen-addr",
	Usage: "full address to listen on, overrides --port",
}

var UpstreamTimeoutFlag = &cli.DurationFlag{
	Name:  "upstream-timeout",
	Value: 10 * time.Second,
	Usage: "timeout of a single identity service request",
}

var RateLimitFlag = &cli.StringFlag{
	Name:  "rate-limit",
	Value: "",
	Usage: "per-IP request limit as <n>-<S|M|H|D>, e.g. 600-M; empty disables",
}

var RpcAddrFlag = &cli.StringFlag{
	Name:  "rpc-addr",
	Usage: "address to connect to RPC",
}

var LogJsonFlag = &cli.BoolFlag{
	Name:  "log-json",
	Value: false,
	Usage: "log in JSON format",
}
var LogDebugFlag = &cli.BoolFlag{
	Name:  "log-debug",
	Value: false,
	Usage: "log debug messages",
}
var LogUidFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Value: false,
	Usage: "generate a uuid and add to all log messages",
}

var LogServiceFlagFn = func(service string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "log-service",
		Value: service,
		Usage: "add 'service' tag to logs",
	}
}

var PprofFlag = &cli.BoolFlag{
	Name:  "pprof",
	Value: false,
	Usage: "enable pprof debug endpoint",
}
var DrainSecondsFlag = &cli.Int64Flag{
	Name:  "drain-seconds",
	Value: 45,
	Usage: "seconds to wait in drain HTTP request",
}
var MetricsAddrFlag = &cli.StringFlag{
	Name:  "metrics-addr",
	Value: "127.0.0.1:8090",
	Usage: "address to listen on for Prometheus metrics",
}

var CommonFlags = []cli.Flag{
	LogJsonFlag,
	LogDebugFlag,
	LogUidFlag,
	PprofFlag,
	DrainSecondsFlag,
	MetricsAddrFlag,
}
