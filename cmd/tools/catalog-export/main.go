// cmd/tools/catalog-export/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"wordpress-posts/internal/common/logger"
	createpost "wordpress-posts/internal/workers/posts/create-post"
	getpost "wordpress-posts/internal/workers/posts/get-post"
	listposts "wordpress-posts/internal/workers/posts/list-posts"
	updatepost "wordpress-posts/internal/workers/posts/update-post"
	"wordpress-posts/pkg/registry"
)

const defaultCatalogPath = "configs/tool-catalog.json"

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	exportPath := exportCmd.String("out", defaultCatalogPath, "Path the catalog is written to")
	validatePath := validateCmd.String("path", defaultCatalogPath, "Path to catalog file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		cat, err := buildCatalog()
		if err != nil {
			fmt.Printf("Error building catalog: %v\n", err)
			os.Exit(1)
		}
		if err := registry.SaveCatalog(*exportPath, cat); err != nil {
			fmt.Printf("Error writing catalog: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %d tools to %s\n", len(cat.Tools), *exportPath)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		if err := validateCatalog(*validatePath); err != nil {
			fmt.Printf("Catalog validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Catalog validation passed.")

	case "help":
		fallthrough
	default:
		help()
	}
}

// buildCatalog describes every tool with its default configuration.
func buildCatalog() (*registry.ToolCatalog, error) {
	log := logger.NewNoOpLogger()

	list, err := listposts.NewHandler(listposts.HandlerOptions{Logger: log})
	if err != nil {
		return nil, err
	}
	get, err := getpost.NewHandler(getpost.HandlerOptions{Logger: log})
	if err != nil {
		return nil, err
	}
	create, err := createpost.NewHandler(createpost.HandlerOptions{Logger: log})
	if err != nil {
		return nil, err
	}
	update, err := updatepost.NewHandler(updatepost.HandlerOptions{Logger: log})
	if err != nil {
		return nil, err
	}

	cat := &registry.ToolCatalog{
		Name:        "wordpress-posts",
		Version:     "1.0.0",
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
		Tools: []registry.ToolDescriptor{
			list.Descriptor(),
			get.Descriptor(),
			create.Descriptor(),
			update.Descriptor(),
		},
	}
	cat.SortTools()

	if problems := cat.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("generated catalog is invalid: %v", problems)
	}
	return cat, nil
}

func validateCatalog(path string) error {
	cat, err := registry.LoadCatalog(path)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	if len(cat.Tools) == 0 {
		return fmt.Errorf("catalog contains no tools")
	}
	if problems := cat.Validate(); len(problems) > 0 {
		for _, p := range problems {
			fmt.Printf("  - %s\n", p)
		}
		return fmt.Errorf("%d problem(s) found", len(problems))
	}
	fmt.Printf("Found %d tools.\n", len(cat.Tools))
	return nil
}

const usage = `Usage: catalog-export <command> [flags]

Commands:
  export    Write the tool catalog built from the registered handlers
  validate  Validate a catalog file
  help      Show this help message

Examples:
  catalog-export export -out configs/tool-catalog.json
  catalog-export validate -path configs/tool-catalog.json

Use 'catalog-export <command> -h' for more information about a command.
`

func help() {
	fmt.Print(usage)
}
