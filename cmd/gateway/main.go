package main

import (
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/likecoin/likerid-ens-gateway/api/gateway"
	"github.com/likecoin/likerid-ens-gateway/ccip"
	"github.com/likecoin/likerid-ens-gateway/cmd/flags"
	"github.com/likecoin/likerid-ens-gateway/httpserver"
	"github.com/likecoin/likerid-ens-gateway/kms"
	"github.com/likecoin/likerid-ens-gateway/likerid"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "ens-gateway",
		Usage: "Serve signed ENS off-chain resolution for Liker ID names",
		Flags: append([]cli.Flag{
			flags.PrivateKeyFlag,
			flags.DevelopmentFlag,
			flags.TTLFlag,
			flags.PortFlag,
			flags.ListenAddrFlag,
			flags.UpstreamTimeoutFlag,
			flags.RateLimitFlag,
			flags.LogServiceFlagFn("ens-gateway"),
		}, flags.CommonFlags...),
		Action: func(cCtx *cli.Context) error {
			logger := flags.SetupLogger(cCtx)

			key, err := kms.LoadSigningKey(cCtx.String(flags.PrivateKeyFlag.Name))
			if err != nil {
				logger.Error("Invalid signing key", "err", err)
				return err
			}

			testnet := cCtx.Bool(flags.DevelopmentFlag.Name)
			client := likerid.NewProfileClient(likerid.APIBaseURL(testnet), cCtx.Duration(flags.UpstreamTimeoutFlag.Name))
			database := likerid.NewDatabase(cCtx.Uint64(flags.TTLFlag.Name), testnet, client, logger)

			service := ccip.NewService(database, ccip.NewSigner(key))
			handler := gateway.NewHandler(service, logger)

			listenAddr := flags.ListenAddr(cCtx)
			server, err := httpserver.New(flags.ConfigureServer(cCtx, logger, listenAddr), handler)
			if err != nil {
				logger.Error("Failed to create server", "err", err)
				return err
			}

			port := listenAddr
			if _, p, err := net.SplitHostPort(listenAddr); err == nil {
				port = p
			}
			logger.Info(fmt.Sprintf("Serving on port %s with signing address %s", port, key.Address().Hex()),
				"testnet", testnet, "upstream", likerid.APIBaseURL(testnet))
			server.RunInBackground()

			exit := make(chan os.Signal, 1)
			signal.Notify(exit, os.Interrupt, syscall.SIGTERM)
			<-exit
			logger.Info("Shutdown signal received")

			server.Shutdown()
			logger.Info("Server shutdown complete")

			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
