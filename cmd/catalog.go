package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kisansaathi/kisansaathi-backend/internal/data/catalog"
	"github.com/kisansaathi/kisansaathi-backend/internal/platform/logger"
)

var catalogPath string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the scheme catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every scheme id and title",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		cyan := color.New(color.FgCyan).SprintFunc()
		w := cmd.OutOrStdout()
		for _, r := range cat.All() {
			fmt.Fprintf(w, "%s %s\n", cyan(fmt.Sprintf("%3d", r.ID)), r.Title)
		}
		fmt.Fprintf(w, "\n%d scheme(s)\n", cat.Len())
		return nil
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print one scheme as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid scheme id %q", args[0])
		}
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		rec, ok := cat.ByID(id)
		if !ok {
			return fmt.Errorf("scheme %d not found", id)
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and validate the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("catalog ok: %d scheme(s)", cat.Len()))
		return nil
	},
}

func init() {
	catalogCmd.PersistentFlags().StringVar(&catalogPath, "path", "", "catalog YAML file (defaults to SCHEME_CATALOG_PATH or the embedded catalog)")
	catalogCmd.AddCommand(catalogListCmd, catalogShowCmd, catalogValidateCmd)
}

func loadCatalog() (*catalog.Static, error) {
	path := catalogPath
	if path == "" {
		path = os.Getenv("SCHEME_CATALOG_PATH")
	}
	return catalog.Load(logger.Nop(), path)
}
