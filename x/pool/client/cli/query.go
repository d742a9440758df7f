package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"

	"github.com/sharehodl/lending-pool/x/pool/types"
)

// GetQueryCmd returns the cli query commands for the pool module.
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "pool",
		Short:                      "Querying commands for the lending pool module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		GetCmdQueryParams(),
		GetCmdQueryReserve(),
		GetCmdQueryReserves(),
		GetCmdQueryPriceFeed(),
	)

	return cmd
}

// queryStore performs a raw ABCI key lookup against the module's KVStore.
// This module persists state as JSON, not protobuf, so there is no
// generated gRPC query service to call through; the node's own ABCI query
// router still answers a direct "/store/<key>/key" path against any
// mounted store, which is what this reaches.
func queryStore(clientCtx client.Context, key []byte) ([]byte, error) {
	path := fmt.Sprintf("/store/%s/key", types.StoreKey)
	value, _, err := clientCtx.QueryWithData(path, key)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, fmt.Errorf("not found")
	}
	return value, nil
}

// printJSON re-indents a JSON-encoded store value for readable CLI output.
func printJSON(cmd *cobra.Command, raw []byte) error {
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return err
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), out.String())
	return err
}

// GetCmdQueryParams returns the command to query the module's global params.
func GetCmdQueryParams() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Query the pool module's global parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			raw, err := queryStore(clientCtx, types.ParamsKey)
			if err != nil {
				return err
			}
			return printJSON(cmd, raw)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryReserve returns the command to query a single reserve by asset.
func GetCmdQueryReserve() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reserve [asset]",
		Short: "Query a reserve's accrual state and configuration by asset identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			raw, err := queryStore(clientCtx, types.GetReserveKey(args[0]))
			if err != nil {
				return err
			}
			return printJSON(cmd, raw)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryReserves returns the command to list every initialized reserve.
func GetCmdQueryReserves() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reserves",
		Short: "Query every initialized reserve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			listRaw, err := queryStore(clientCtx, types.ReserveListKey)
			if err != nil {
				return err
			}
			var assets []string
			if err := json.Unmarshal(listRaw, &assets); err != nil {
				return err
			}

			reserves := make([]json.RawMessage, 0, len(assets))
			for _, asset := range assets {
				raw, err := queryStore(clientCtx, types.GetReserveKey(asset))
				if err != nil {
					return err
				}
				reserves = append(reserves, json.RawMessage(raw))
			}

			bz, err := json.Marshal(reserves)
			if err != nil {
				return err
			}
			return printJSON(cmd, bz)
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdQueryPriceFeed returns the command to query the price-feed identity bound to an asset.
func GetCmdQueryPriceFeed() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price-feed [asset]",
		Short: "Query the price-feed identity bound to an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}

			raw, err := queryStore(clientCtx, types.GetPriceFeedKey(args[0]))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return err
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
