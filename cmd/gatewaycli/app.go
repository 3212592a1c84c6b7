package main

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"time"

	"sequencer_gateway/internal/app/service"
	"sequencer_gateway/internal/client"
	"sequencer_gateway/internal/domain/entity"
	"sequencer_gateway/internal/infrastructure/gateway"
	"sequencer_gateway/internal/infrastructure/hashloader"
	"sequencer_gateway/internal/pkg/logger"
	"sequencer_gateway/internal/pkg/utils"

	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli/v2"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	flagNetwork  = "network"
	flagBaseURL  = "base-url"
	flagTimeout  = "timeout"
	flagLogLevel = "log-level"
	flagBlock    = "block"
	flagInterval = "interval"
	flagContract = "contract"
	flagFunction = "function"
	flagCalldata = "calldata"
	flagSig      = "signature"
	flagNonce    = "nonce"
	flagVersion  = "version"
	flagFromFile = "from-file"
	flagArtifact = "artifact"
	flagSalt     = "salt"
)

func newApp(out io.Writer) *cli.App {
	blockFlag := &cli.StringFlag{Name: flagBlock, Aliases: []string{"b"}, Usage: "pending, latest, a block number or a block hash"}

	return &cli.App{
		Name:   "gatewaycli",
		Usage:  "query the StarkNet feeder gateway and gateway",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagNetwork, Usage: "named network (goerli-alpha, mainnet-alpha)", EnvVars: []string{"STARKNET_NETWORK"}},
			&cli.StringFlag{Name: flagBaseURL, Usage: "gateway base URL, overrides --network", EnvVars: []string{"STARKNET_BASE_URL"}},
			&cli.DurationFlag{Name: flagTimeout, Value: 30 * time.Second, Usage: "overall command timeout"},
			&cli.StringFlag{Name: flagLogLevel, Value: "warn", EnvVars: []string{"LOG_LEVEL"}},
		},
		Commands: []*cli.Command{
			{
				Name:      "status",
				Usage:     "print the status of a transaction",
				ArgsUsage: "<tx-hash>",
				Action: withClient(func(ctx context.Context, c *cli.Context, sc *client.SequencerClient) (any, error) {
					hash, err := singleArg(c)
					if err != nil {
						return nil, err
					}
					return sc.GetTransactionStatus(ctx, hash)
				}),
			},
			{
				Name:      "wait",
				Usage:     "wait until every transaction is accepted or pending",
				ArgsUsage: "<tx-hash>...",
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: flagInterval, Value: service.DefaultPollInterval, Usage: "delay before every status check"},
					&cli.StringFlag{Name: flagFromFile, Usage: "read more hashes from a file, one per line"},
				},
				Action: withClient(func(ctx context.Context, c *cli.Context, sc *client.SequencerClient) (any, error) {
					hashes := c.Args().Slice()
					if path := c.String(flagFromFile); path != "" {
						fromFile, err := hashloader.NewTransactionHashFileLoader(path, logger.NewSlogAdapter()).GetTransactionHashes()
						if err != nil {
							return nil, err
						}
						hashes = append(hashes, fromFile...)
					}
					if len(hashes) == 0 {
						return nil, fmt.Errorf("at least one transaction hash is required")
					}
					if err := sc.WaitForTransactions(ctx, hashes, c.Duration(flagInterval)); err != nil {
						return nil, err
					}
					return map[string]any{"transaction_hashes": hashes, "settled": true}, nil
				}),
			},
			{
				Name:      "block",
				Usage:     "print a block, the latest one by default",
				ArgsUsage: "[block]",
				Action: withClient(func(ctx context.Context, c *cli.Context, sc *client.SequencerClient) (any, error) {
					block, err := entity.ParseBlockIdentifier(c.Args().First())
					if err != nil {
						return nil, err
					}
					return sc.GetBlock(ctx, block)
				}),
			},
			{
				Name:  "call",
				Usage: "call a view function",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: flagContract, Required: true},
					&cli.StringFlag{Name: flagFunction, Required: true, Usage: "function name"},
					&cli.StringSliceFlag{Name: flagCalldata, Usage: "calldata felts, decimal or hex"},
					blockFlag,
				},
				Action: withClient(func(ctx context.Context, c *cli.Context, sc *client.SequencerClient) (any, error) {
					calldata, err := parseFelts(c.StringSlice(flagCalldata))
					if err != nil {
						return nil, err
					}
					block, err := entity.ParseBlockIdentifier(c.String(flagBlock))
					if err != nil {
						return nil, err
					}
					return sc.CallContract(ctx, entity.Call{
						ContractAddress:    c.String(flagContract),
						EntryPointSelector: c.String(flagFunction),
						Calldata:           calldata,
					}, block)
				}),
			},
			{
				Name:  "estimate-fee",
				Usage: "estimate the fee of an invoke transaction",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: flagContract, Required: true},
					&cli.StringSliceFlag{Name: flagCalldata, Usage: "calldata felts, decimal or hex"},
					&cli.StringSliceFlag{Name: flagSig, Usage: "signature felts, decimal or hex"},
					&cli.StringFlag{Name: flagNonce},
					&cli.StringFlag{Name: flagVersion},
					blockFlag,
				},
				Action: withClient(func(ctx context.Context, c *cli.Context, sc *client.SequencerClient) (any, error) {
					calldata, err := parseFelts(c.StringSlice(flagCalldata))
					if err != nil {
						return nil, err
					}
					signature, err := parseFelts(c.StringSlice(flagSig))
					if err != nil {
						return nil, err
					}
					var details entity.InvocationDetails
					if details.Nonce, err = optionalFelt(c.String(flagNonce)); err != nil {
						return nil, err
					}
					if details.Version, err = optionalFelt(c.String(flagVersion)); err != nil {
						return nil, err
					}
					block, err := entity.ParseBlockIdentifier(c.String(flagBlock))
					if err != nil {
						return nil, err
					}
					return sc.EstimateFee(ctx, entity.Invocation{
						ContractAddress: c.String(flagContract),
						Calldata:        calldata,
						Signature:       signature,
					}, details, block)
				}),
			},
			{
				Name:  "declare",
				Usage: "declare a compiled contract class",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: flagArtifact, Required: true, Usage: "path to the compiled contract JSON"},
					&cli.StringFlag{Name: flagVersion},
				},
				Action: withClient(func(ctx context.Context, c *cli.Context, sc *client.SequencerClient) (any, error) {
					contract, err := utils.LoadCompiledContract(c.String(flagArtifact))
					if err != nil {
						return nil, err
					}
					version, err := optionalFelt(c.String(flagVersion))
					if err != nil {
						return nil, err
					}
					return sc.DeclareContract(ctx, entity.DeclareContractPayload{Contract: contract, Version: version})
				}),
			},
			{
				Name:  "deploy",
				Usage: "deploy a compiled contract",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: flagArtifact, Required: true, Usage: "path to the compiled contract JSON"},
					&cli.StringSliceFlag{Name: flagCalldata, Usage: "constructor calldata felts, decimal or hex"},
					&cli.StringFlag{Name: flagSalt, Usage: "address salt, random when empty"},
				},
				Action: withClient(func(ctx context.Context, c *cli.Context, sc *client.SequencerClient) (any, error) {
					contract, err := utils.LoadCompiledContract(c.String(flagArtifact))
					if err != nil {
						return nil, err
					}
					calldata, err := parseFelts(c.StringSlice(flagCalldata))
					if err != nil {
						return nil, err
					}
					return sc.DeployContract(ctx, entity.DeployContractPayload{
						Contract:            contract,
						ConstructorCalldata: calldata,
						AddressSalt:         c.String(flagSalt),
					})
				}),
			},
			{
				Name:  "contract-addresses",
				Usage: "print the L1 core contract addresses",
				Action: withClient(func(ctx context.Context, _ *cli.Context, sc *client.SequencerClient) (any, error) {
					return sc.GetContractAddresses(ctx)
				}),
			},
		},
	}
}

type commandFunc func(ctx context.Context, c *cli.Context, sc *client.SequencerClient) (any, error)

// withClient builds a client from the global flags, runs fn under the command timeout and prints
// the result as JSON.
func withClient(fn commandFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		zapLogger, err := logger.NewZapLogger(c.String(flagLogLevel), "console")
		if err != nil {
			return err
		}
		defer func() { _ = zapLogger.Sync() }()
		logger.InitSlog(zapLogger)

		sc, err := client.NewSequencerClient(client.Options{
			Network: c.String(flagNetwork),
			BaseURL: c.String(flagBaseURL),
			Gateway: gateway.Config{RequestTimeout: c.Duration(flagTimeout)},
		}, zapLogger)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(c.Context, c.Duration(flagTimeout))
		defer cancel()

		res, err := fn(ctx, c, sc)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		_, err = fmt.Fprintln(c.App.Writer, string(out))
		return err
	}
}

func singleArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("expected exactly one argument, got %d", c.NArg())
	}
	return c.Args().First(), nil
}

func parseFelts(values []string) ([]*big.Int, error) {
	out := make([]*big.Int, 0, len(values))
	for _, v := range values {
		n, err := utils.ParseBigInt(v)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func optionalFelt(v string) (*big.Int, error) {
	if v == "" {
		return nil, nil
	}
	return utils.ParseBigInt(v)
}
