package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kisansaathi/kisansaathi-backend/internal/app"
	types "github.com/kisansaathi/kisansaathi-backend/internal/domain"
)

var (
	searchState    string
	searchSoilType string
	searchRole     string
	searchJSON     bool
	searchTimeout  time.Duration
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Run one scheme search and print the result",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), searchTimeout)
		defer cancel()

		a, err := app.New(ctx)
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}
		defer a.Close(context.Background())

		req := types.SearchRequest{Query: strings.Join(args, " ")}
		profile := &types.UserProfileContext{State: searchState, SoilType: searchSoilType, Role: searchRole}
		if !profile.IsEmpty() {
			req.UserProfile = profile
		}
		resp, err := a.Services.SchemeSearch.Search(ctx, req)
		if err != nil {
			return err
		}
		if searchJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		}
		printSearchResponse(cmd.OutOrStdout(), resp)
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchState, "state", "", "farmer's state")
	searchCmd.Flags().StringVar(&searchSoilType, "soil", "", "farmer's soil type")
	searchCmd.Flags().StringVar(&searchRole, "role", "", "farmer's role, e.g. tenant or owner")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print the raw JSON response")
	searchCmd.Flags().DurationVar(&searchTimeout, "timeout", 60*time.Second, "overall timeout")
}

func printSearchResponse(w io.Writer, resp *types.SearchResponse) {
	bold := color.New(color.Bold).SprintFunc()
	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintf(w, "%s %q: %d scheme(s)\n", bold("Results for"), resp.Query, resp.TotalFound)
	if resp.Warning != "" {
		fmt.Fprintln(w, yellow("! "+resp.Warning))
	}
	for i, r := range resp.Schemes {
		fmt.Fprintf(w, "\n%d. %s %s\n", i+1, boldGreen(r.Title), cyan(fmt.Sprintf("[#%d]", r.ID)))
		if r.RelevanceScore != nil {
			fmt.Fprintf(w, "   relevance: %.0f/100\n", *r.RelevanceScore)
		}
		if r.Explanation != nil && *r.Explanation != "" {
			fmt.Fprintf(w, "   %s\n", *r.Explanation)
		}
		if r.Website != "" {
			fmt.Fprintf(w, "   %s\n", cyan(r.Website))
		}
	}
}
