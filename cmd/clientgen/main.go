// cmd/clientgen regenerates the typed client bindings in gen/sdk from
// the exported API description.
//
// By default it reads the committed document at gen/openapi/swagger.json.
// Set SWAGGER_URL to an http(s) URL to regenerate against a running
// server's published document instead.
package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattbenson/storefront/internal/codegen"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("clientgen: ")

	projectRoot := findProjectRoot()

	src := os.Getenv("SWAGGER_URL")
	if src == "" {
		src = filepath.Join(projectRoot, "gen", "openapi", "swagger.json")
	}

	raw, err := loadDocument(src)
	if err != nil {
		log.Fatalf("loading document from %s: %v", src, err)
	}

	doc, err := codegen.ParseDocument(raw)
	if err != nil {
		log.Fatalf("parsing document: %v", err)
	}

	files, err := codegen.Render(doc)
	if err != nil {
		log.Fatalf("rendering bindings: %v", err)
	}

	outDir := filepath.Join(projectRoot, "gen", "sdk")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatalf("creating %s: %v", outDir, err)
	}
	for name, content := range files {
		path := filepath.Join(outDir, name)
		if err := os.WriteFile(path, content, 0o644); err != nil {
			log.Fatalf("writing %s: %v", path, err)
		}
		fmt.Printf("wrote %s (%d bytes)\n", path, len(content))
	}
}

func loadDocument(src string) ([]byte, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		resp, err := http.Get(src)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(src)
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		log.Fatalf("getwd: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			log.Fatal("cannot find project root (no go.mod found)")
		}
		dir = parent
	}
}
