package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// clientServerKey is the entry written under mcpServers.
const clientServerKey = "KakaoMap"

func newGenerateConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate-config <path>",
		Short: "Add kmapmcp to a Claude Desktop client config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			execPath, err := os.Executable()
			if err != nil {
				execPath = os.Args[0]
			}
			if err := generateClientConfig(args[0], execPath); err != nil {
				return fmt.Errorf("failed to generate config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s server entry to %s\n", clientServerKey, args[0])
			return nil
		},
	}
}

// generateClientConfig creates or updates a Claude Desktop client config
// file so that it launches execPath. Other servers in the file are kept.
func generateClientConfig(outputPath, execPath string) error {
	if outputPath == "" {
		return errors.New("output path is empty")
	}
	if filepath.Ext(outputPath) != ".json" {
		return fmt.Errorf("output path %q must have a .json extension", outputPath)
	}
	for _, part := range strings.Split(filepath.ToSlash(outputPath), "/") {
		if part == ".." {
			return fmt.Errorf("output path %q must not contain '..'", outputPath)
		}
	}

	absExecPath, err := filepath.Abs(execPath)
	if err != nil {
		absExecPath = execPath
	}

	serverConfig := map[string]any{
		"command": absExecPath,
		"args":    []string{"serve"},
	}

	config := make(map[string]any)
	if data, err := os.ReadFile(outputPath); err == nil {
		if err := json.Unmarshal(data, &config); err != nil || config == nil {
			slog.Default().Warn("existing config is not valid JSON, will create new", "path", outputPath, "error", err)
			config = make(map[string]any)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read existing config: %w", err)
	}

	mcpServers, ok := config["mcpServers"].(map[string]any)
	if !ok {
		mcpServers = make(map[string]any)
		config["mcpServers"] = mcpServers
	}
	mcpServers[clientServerKey] = serverConfig

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
