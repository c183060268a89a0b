package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/big"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/likecoin/likerid-ens-gateway/api/gateway"
	"github.com/likecoin/likerid-ens-gateway/ccip"
	"github.com/likecoin/likerid-ens-gateway/cmd/flags"
	"github.com/likecoin/likerid-ens-gateway/ens"
	"github.com/likecoin/likerid-ens-gateway/interfaces"
	"github.com/likecoin/likerid-ens-gateway/registry"
	"github.com/urfave/cli/v2"
)

var flagGateway = &cli.StringFlag{
	Name:  "gateway",
	Usage: "gateway URL; a URL containing {data} is queried with GET, otherwise with POST. Defaults to the resolver contract's url()",
}
var flagName = &cli.StringFlag{
	Name:     "name",
	Required: true,
	Usage:    "ENS name to resolve, e.g. alice.id.like.co",
}
var flagCoinType = &cli.StringFlag{
	Name:  "coin-type",
	Value: "60",
	Usage: "SLIP-44 coin type of the addr record",
}
var flagText = &cli.StringFlag{
	Name:  "text",
	Usage: "resolve the text record with this key instead of an address",
}
var flagContenthash = &cli.BoolFlag{
	Name:  "contenthash",
	Usage: "resolve the content hash instead of an address",
}
var flagSender = &cli.StringFlag{
	Name:  "sender",
	Usage: "resolver contract address the lookup is made for. Defaults to --resolver-contract",
}
var flagResolverContract = &cli.StringFlag{
	Name:  "resolver-contract",
	Usage: "OffchainResolver contract address; with --rpc-addr the response signer is checked against it",
}
var flagTimeout = &cli.DurationFlag{
	Name:  "timeout",
	Value: 30 * time.Second,
	Usage: "timeout of the whole lookup",
}

func main() {
	app := &cli.App{
		Name:  "resolve",
		Usage: "Resolve a name through a gateway and verify the signed response",
		Flags: []cli.Flag{
			flagGateway,
			flagName,
			flagCoinType,
			flagText,
			flagContenthash,
			flagSender,
			flagResolverContract,
			flags.RpcAddrFlag,
			flagTimeout,
		},
		Action: func(cCtx *cli.Context) error {
			ctx, cancel := context.WithTimeout(cCtx.Context, cCtx.Duration(flagTimeout.Name))
			defer cancel()

			query, err := buildQuery(cCtx)
			if err != nil {
				return err
			}

			var resolver *registry.OffchainResolverClient
			if addr := cCtx.String(flagResolverContract.Name); addr != "" {
				if !common.IsHexAddress(addr) {
					return fmt.Errorf("invalid resolver contract %q", addr)
				}
				rpcAddr := cCtx.String(flags.RpcAddrFlag.Name)
				if rpcAddr == "" {
					return errors.New("--resolver-contract requires --rpc-addr")
				}
				ethClient, err := ethclient.DialContext(ctx, rpcAddr)
				if err != nil {
					return fmt.Errorf("could not dial rpc: %w", err)
				}
				defer ethClient.Close()
				resolver = registry.NewOffchainResolverClient(ethClient, common.HexToAddress(addr))
			}

			gatewayURL := cCtx.String(flagGateway.Name)
			if gatewayURL == "" {
				if resolver == nil {
					return errors.New("one of --gateway or --resolver-contract is required")
				}
				if gatewayURL, err = resolver.URL(ctx); err != nil {
					return err
				}
			}

			sender := common.Address{}
			switch {
			case cCtx.String(flagSender.Name) != "":
				if !common.IsHexAddress(cCtx.String(flagSender.Name)) {
					return fmt.Errorf("invalid sender %q", cCtx.String(flagSender.Name))
				}
				sender = common.HexToAddress(cCtx.String(flagSender.Name))
			case resolver != nil:
				sender = resolver.Address()
			}

			res, err := gateway.NewClient(gatewayURL, cCtx.Duration(flagTimeout.Name)).Resolve(ctx, sender, query)
			if err != nil {
				return err
			}

			value, err := formatValue(query, res)
			if err != nil {
				return err
			}

			fmt.Printf("gateway:  %s\n", gatewayURL)
			fmt.Printf("function: %s\n", res.Function)
			fmt.Printf("signer:   %s\n", res.Signer.Hex())
			fmt.Printf("expires:  %s\n", res.Expires.UTC().Format(time.RFC3339))
			fmt.Printf("value:    %s\n", value)

			if resolver != nil {
				allowed, err := resolver.IsSigner(ctx, res.Signer)
				if err != nil {
					return err
				}
				if !allowed {
					return fmt.Errorf("signer %s is not authorized by %s", res.Signer.Hex(), resolver.Address().Hex())
				}
				fmt.Printf("signer authorized by %s\n", resolver.Address().Hex())
			}

			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func buildQuery(cCtx *cli.Context) (interfaces.Query, error) {
	name := cCtx.String(flagName.Name)

	switch {
	case cCtx.Bool(flagContenthash.Name):
		return interfaces.ContenthashQuery(name), nil
	case cCtx.IsSet(flagText.Name):
		return interfaces.TextQuery(name, cCtx.String(flagText.Name)), nil
	default:
		coinType, ok := new(big.Int).SetString(cCtx.String(flagCoinType.Name), 0)
		if !ok || coinType.Sign() < 0 {
			return interfaces.Query{}, fmt.Errorf("invalid coin type %q", cCtx.String(flagCoinType.Name))
		}
		return interfaces.AddrQuery(name, coinType), nil
	}
}

func formatValue(q interfaces.Query, res *gateway.Resolution) (string, error) {
	switch v := res.Value.(type) {
	case common.Address:
		return v.Hex(), nil
	case string:
		return fmt.Sprintf("%q", v), nil
	case []byte:
		if res.Function == ccip.SigContenthash {
			uri, err := ens.DecodeContentHash(v)
			if err != nil {
				return fmt.Sprintf("0x%x", v), nil
			}
			return uri, nil
		}
		addr, err := ens.DecodeCoinAddress(q.CoinType, v)
		if err != nil {
			return fmt.Sprintf("0x%x", v), nil
		}
		return addr, nil
	default:
		return "", fmt.Errorf("unexpected result type %T", res.Value)
	}
}
