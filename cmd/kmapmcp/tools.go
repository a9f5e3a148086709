package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NERVsystems/kmapmcp/pkg/server"
)

func newToolsCmd(flags *globalFlags) *cobra.Command {
	var schema bool

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the available tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			reg, err := server.BuildRegistry(cfg, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, a := range reg.Adapters() {
				fmt.Fprintf(out, "%s\n    %s\n", a.Name(), a.Description())
				if !schema {
					continue
				}
				data, err := json.MarshalIndent(a.Spec().JSONSchema(), "    ", "  ")
				if err != nil {
					return fmt.Errorf("marshal schema of %s: %w", a.Name(), err)
				}
				fmt.Fprintf(out, "    %s\n", data)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&schema, "schema", false, "Also print each tool's input JSON schema")
	return cmd
}

func newCallCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "call <tool> [key=value ...]",
		Short: "Invoke one tool and print its result",
		Example: `  kmapmcp call korean_address_search query="서울 강남구 삼성동 159"
  kmapmcp call korean_category_search category_group_code=PM9 latitude=37.513 longitude=127.0588`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := parseCallArgs(args[1:])
			if err != nil {
				return err
			}

			cfg, logger, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			reg, err := server.BuildRegistry(cfg, logger)
			if err != nil {
				return err
			}

			a, ok := reg.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown tool %q", args[0])
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.Invoke(ctx, input))
			return nil
		},
	}
}

// parseCallArgs turns key=value pairs into tool input. Values stay
// strings; the tool's validator coerces them to the declared types.
func parseCallArgs(pairs []string) (map[string]any, error) {
	input := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("argument %q is not of the form key=value", pair)
		}
		if _, dup := input[key]; dup {
			return nil, fmt.Errorf("argument %q given more than once", key)
		}
		input[key] = value
	}
	return input, nil
}
