package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nbrandt/linkstash/internal/enrich"
	"github.com/nbrandt/linkstash/internal/exporter"
	"github.com/nbrandt/linkstash/internal/health"
	"github.com/nbrandt/linkstash/internal/importer"
	"github.com/nbrandt/linkstash/internal/model"
	"github.com/nbrandt/linkstash/internal/picker"
	"github.com/nbrandt/linkstash/internal/search"
	"github.com/nbrandt/linkstash/internal/storage"
	"github.com/nbrandt/linkstash/internal/tui"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "import":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: linkstash import <file.json|file.html>\n")
				os.Exit(1)
			}
			runImport(os.Args[2])
			return
		case "export":
			var outputPath string
			if len(os.Args) >= 3 {
				outputPath = os.Args[2]
			}
			runExport(outputPath)
			return
		case "check":
			runCheck()
			return
		default:
			// Treat as search query (join all remaining args)
			query := strings.Join(os.Args[1:], " ")
			runQuickSearch(query)
			return
		}
	}

	// No args - run full TUI
	runTUI()
}

func printHelp() {
	help := `linkstash - bookmark manager

Usage:
  linkstash                  Open interactive TUI
  linkstash <query>          Quick search -> select -> open
  linkstash import <file>    Import bookmarks (.json replaces, .html merges)
  linkstash export [path]    Export bookmarks to JSON ("html" or a .html path for Netscape format)
  linkstash check            Check all bookmark URLs for dead links
  linkstash help             Show this help

TUI Keybindings:
  j/k         Move down/up
  c/C         Cycle category filter (all, favorites, ...)
  /           Search title, URL, tags, description
  s           Cycle sort (date-desc, date-asc, alpha)
  a/e/d       Add / edit / delete bookmark
  f           Toggle favorite
  Y           Copy URL to clipboard
  o/Enter     Open in browser
  ?           Help overlay
  q           Quit

Data Storage:
  ~/.config/linkstash/bookmarks.json
`
	fmt.Print(help)
}

// openStore opens the storage backend and loads the collection. A
// corrupt data file is surfaced as a warning, not a crash; the app
// continues with an empty collection and will not overwrite until the
// first mutation.
func openStore() (storage.Storage, *model.Collection) {
	store, err := storage.OpenStorage()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}

	collection, err := store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not read bookmarks (%v); starting empty\n", err)
		collection = model.NewCollection()
	}
	return store, collection
}

func loadConfig() *storage.Config {
	configPath, err := storage.DefaultConfigFilePath()
	if err != nil {
		config := storage.DefaultConfig()
		return &config
	}
	config, err := storage.LoadConfig(configPath)
	if err != nil {
		defaults := storage.DefaultConfig()
		return &defaults
	}
	return config
}

// runTUI runs the full interactive TUI.
func runTUI() {
	store, collection := openStore()
	config := loadConfig()

	enricher := enrich.NewClient(
		enrich.WithTimeout(time.Duration(config.EnrichTimeoutSecs) * time.Second),
	)

	app := tui.NewApp(tui.AppParams{
		Collection: collection,
		Store:      store,
		Enricher:   enricher,
		Config:     config,
		OpenURL:    openURL,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// runQuickSearch performs a fuzzy search and opens the selected bookmark.
func runQuickSearch(query string) {
	_, collection := openStore()

	results := search.FuzzySearch(collection, query)

	if len(results) == 0 {
		fmt.Printf("No bookmarks found for '%s'\n", query)
		os.Exit(0)
	}

	var selected *model.Bookmark

	if len(results) == 1 {
		selected = results[0].Bookmark
		fmt.Printf("Opening: %s\n", selected.Title)
	} else {
		p := picker.New(results, query)
		program := tea.NewProgram(p)
		finalModel, err := program.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running picker: %v\n", err)
			os.Exit(1)
		}

		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			os.Exit(0)
		}
		selected = finalPicker.SelectedBookmark()
	}

	if selected == nil {
		os.Exit(0)
	}

	openURL(selected.URL)
}

// openURL opens a URL in the default browser.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	}
	if cmd != nil {
		_ = cmd.Start()
	}
}

// runImport handles the import subcommand. JSON files replace the
// collection wholesale; Netscape HTML files merge, skipping duplicates.
func runImport(filePath string) {
	store, collection := openStore()

	file, err := os.Open(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".html", ".htm":
		bookmarks, err := importer.ParseHTMLBookmarks(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing HTML: %v\n", err)
			os.Exit(1)
		}

		added, skipped := collection.Merge(bookmarks)

		if err := store.Save(collection); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving bookmarks: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Imported %d bookmarks", added)
		if skipped > 0 {
			fmt.Printf(" (%d duplicates skipped)", skipped)
		}
		fmt.Println()

	default:
		bookmarks, err := importer.ParseJSONBookmarks(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading import file: %v\n", err)
			os.Exit(1)
		}

		if err := collection.ReplaceAll(bookmarks); err != nil {
			fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
			os.Exit(1)
		}

		if err := store.Save(collection); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving bookmarks: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Imported %d bookmarks (collection replaced)\n", len(collection.Bookmarks))
	}
}

// runExport handles the export subcommand.
func runExport(outputPath string) {
	_, collection := openStore()

	ext := strings.ToLower(filepath.Ext(outputPath))
	asHTML := ext == ".html" || ext == ".htm" || outputPath == "html"

	if outputPath == "" || outputPath == "html" {
		var err error
		if asHTML {
			outputPath, err = exporter.DefaultHTMLExportPath()
		} else {
			outputPath, err = exporter.DefaultExportPath()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting default export path: %v\n", err)
			os.Exit(1)
		}
	}

	var data []byte
	if asHTML {
		data = []byte(exporter.ExportHTML(collection))
	} else {
		var err error
		data, err = exporter.ExportJSON(collection)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error serializing bookmarks: %v\n", err)
			os.Exit(1)
		}
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d bookmarks to %s\n", len(collection.Bookmarks), outputPath)
}

// runCheck probes every bookmark URL and prints dead/unreachable links.
func runCheck() {
	_, collection := openStore()
	config := loadConfig()

	if len(collection.Bookmarks) == 0 {
		fmt.Println("No bookmarks to check.")
		return
	}

	checker := health.NewChecker(8, 10*time.Second, config.CheckExcludeDomains)

	fmt.Printf("Checking %d bookmarks...\n", len(collection.Bookmarks))
	report := checker.Check(collection.Bookmarks, func(completed, total int) {
		fmt.Printf("\r%d/%d", completed, total)
	})
	fmt.Println()

	if len(report.Dead) == 0 && len(report.Unreachable) == 0 {
		fmt.Println("All links healthy.")
		return
	}

	if len(report.Dead) > 0 {
		fmt.Printf("\nDead (%d):\n", len(report.Dead))
		for _, r := range report.Dead {
			fmt.Printf("  [%d] %s\n      %s\n", r.StatusCode, r.Bookmark.Title, r.Bookmark.URL)
		}
	}

	if len(report.Unreachable) > 0 {
		fmt.Printf("\nUnreachable (%d):\n", len(report.Unreachable))
		for _, r := range report.Unreachable {
			fmt.Printf("  [%s] %s\n      %s\n", r.Error, r.Bookmark.Title, r.Bookmark.URL)
		}
	}
}
