package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"storefront.GO/config"
	catalogService "storefront.GO/service/catalog"
)

var (
	importProductsFile   string
	importCategoriesFile string
	importBatch          int
)

var importCmd = &cobra.Command{
	Use:   "catalog:import",
	Short: "Import catalog fixtures (JSON) into the database",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}

		if importCategoriesFile != "" {
			f, err := os.Open(importCategoriesFile)
			if err != nil {
				fmt.Printf("Failed to open categories file: %v\n", err)
				return
			}
			res, err := catalogService.ImportCategories(db, f, catalogService.ImportOptions{BatchSize: importBatch})
			f.Close()
			if err != nil {
				fmt.Printf("Category import failed: %v\n", err)
				return
			}
			printReport("Categories", res)
		}

		if importProductsFile != "" {
			f, err := os.Open(importProductsFile)
			if err != nil {
				fmt.Printf("Failed to open products file: %v\n", err)
				return
			}
			res, err := catalogService.ImportProducts(db, f, catalogService.ImportOptions{BatchSize: importBatch})
			f.Close()
			if err != nil {
				fmt.Printf("Product import failed: %v\n", err)
				return
			}
			printReport("Products", res)
		}

		if importProductsFile == "" && importCategoriesFile == "" {
			fmt.Println("Nothing to do: pass --products and/or --categories")
		}
	},
}

func printReport(kind string, res *catalogService.ImportResult) {
	for _, w := range res.Warnings {
		fmt.Printf("  [warn] %s\n", w)
	}
	fmt.Printf(`
=== %s Import Report ===
Fixture rows:   %d
Imported:       %d
Skipped:        %d
Total time:     %s
  - Processing: %s
  - DB upsert:  %s
=====================
`, kind, res.TotalRows, res.Imported, res.Skipped,
		res.TotalTime.Round(time.Millisecond),
		res.ProcessTime.Round(time.Millisecond),
		res.DBTime.Round(time.Millisecond))
}

func init() {
	importCmd.Flags().StringVarP(&importProductsFile, "products", "p", "", "Products fixture JSON file")
	importCmd.Flags().StringVarP(&importCategoriesFile, "categories", "c", "", "Categories fixture JSON file")
	importCmd.Flags().IntVar(&importBatch, "batch-size", 100, "Batch size for DB operations")
	rootCmd.AddCommand(importCmd)
}
