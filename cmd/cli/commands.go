package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/spf13/cobra"
)

var (
	accountID string
	seasonID  string
	dryRun    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&accountID, "account", "", "The account id")
	rootCmd.PersistentFlags().StringVar(&seasonID, "season", "", "The season id")

	applyCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate without persisting")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the problem spec preview for a season",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{"accountId": {accountID}, "seasonId": {seasonID}}
		return performGetRequest("/schedule/preview?" + query.Encode())
	},
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the availability rules for a season",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{"accountId": {accountID}, "seasonId": {seasonID}}
		return performGetRequest("/schedule/rules?" + query.Encode())
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply <request.json>",
	Short: "Apply a schedule proposal from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read request file: %w", err)
		}
		endpoint := "/schedule/apply"
		if dryRun {
			endpoint += "?dry_run=true"
		}
		return performPostRequest(endpoint, body)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string, body []byte) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
