// Command import_check runs the product importer against the URLs given as
// arguments and prints what would be added to a wardrobe.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/raushankrgupta/virtual-closet/closet"
	"github.com/raushankrgupta/virtual-closet/scrapers"
	"github.com/raushankrgupta/virtual-closet/utils"
	"go.uber.org/zap"
)

func main() {
	browser := flag.Bool("browser", false, "fall back to headless Chrome when plain HTTP fails")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}
	logger, err := utils.NewLogger(true, level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	urls := flag.Args()
	if len(urls) == 0 {
		fmt.Fprintln(os.Stderr, "usage: import_check [-browser] [-v] <product_url>...")
		os.Exit(2)
	}

	failed := 0
	for _, u := range urls {
		fmt.Printf("Testing URL: %s\n", u)
		if err := check(u, *browser); err != nil {
			log.Printf("Import failed for %s: %v\n", u, err)
			failed++
		}
		fmt.Println("--------------------------------------------------")
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func check(u string, browser bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	scraper, resolved, err := scrapers.GetScraper(ctx, u, browser)
	if err != nil {
		return err
	}
	fmt.Printf("Resolved URL: %s\n", resolved)
	fmt.Printf("Scraper: %T\n", scraper)

	product, err := scraper.ScrapeProduct(ctx, resolved)
	if err != nil {
		return err
	}

	b, _ := json.MarshalIndent(product, "", "  ")
	fmt.Printf("Product: %s\n", string(b))
	fmt.Printf("Category: %s\n", closet.GuessCategory(product.CategoryHint, product.Title))
	return nil
}
