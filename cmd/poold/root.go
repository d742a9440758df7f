package main

import (
	"os"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/config"
	"github.com/cosmos/cosmos-sdk/client/debug"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/rpc"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authcmd "github.com/cosmos/cosmos-sdk/x/auth/client/cli"
	"github.com/spf13/cobra"

	poolcli "github.com/sharehodl/lending-pool/x/pool/client/cli"
)

// bech32 prefixes this CLI assumes of the host chain it queries.
const (
	bech32PrefixAccAddr = "hodl"
	bech32PrefixAccPub  = "hodlpub"
	bech32PrefixValAddr = "hodlvaloper"
	bech32PrefixValPub  = "hodlvaloperpub"
	bech32PrefixConsAddr = "hodlvalcons"
	bech32PrefixConsPub  = "hodlvalconspub"
)

// newRootCmd builds poold's root command: a read-only query client for the
// lending pool module. It carries no start/init/tx/keys subcommands because
// poold never signs anything or runs a node — it is a thin query surface,
// the same role sharehodld's own query subtree plays for the rest of the
// chain, scoped to a single module.
func newRootCmd() *cobra.Command {
	enc := makeEncodingConfig()

	initClientCtx := client.Context{}.
		WithCodec(enc.Codec).
		WithInterfaceRegistry(enc.InterfaceRegistry).
		WithTxConfig(enc.TxConfig).
		WithLegacyAmino(enc.Amino).
		WithInput(os.Stdin).
		WithHomeDir(defaultPooldHome).
		WithViper("POOLD")

	rootCmd := &cobra.Command{
		Use:   "poold",
		Short: "Read-only query client for the lending pool module",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())

			clientCtx, err := client.ReadPersistentCommandFlags(initClientCtx, cmd.Flags())
			if err != nil {
				return err
			}
			clientCtx, err = config.ReadFromClientConfig(clientCtx)
			if err != nil {
				return err
			}
			return client.SetCmdClientContextHandler(clientCtx, cmd)
		},
	}

	cfg := sdk.GetConfig()
	cfg.SetBech32PrefixForAccount(bech32PrefixAccAddr, bech32PrefixAccPub)
	cfg.SetBech32PrefixForValidator(bech32PrefixValAddr, bech32PrefixValPub)
	cfg.SetBech32PrefixForConsensusNode(bech32PrefixConsAddr, bech32PrefixConsPub)
	cfg.Seal()

	rootCmd.AddCommand(
		debug.Cmd(),
		rpc.StatusCommand(),
		queryCommand(),
		config.Cmd(),
	)

	return rootCmd
}

func queryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "query",
		Aliases:                    []string{"q"},
		Short:                      "Querying subcommands",
		DisableFlagParsing:         false,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		rpc.ValidatorCommand(),
		authcmd.QueryTxCmd(),
		authcmd.QueryTxsByEventsCmd(),
		poolcli.GetQueryCmd(),
	)

	cmd.PersistentFlags().String(flags.FlagChainID, "", "The network chain ID")

	return cmd
}
