package main

import (
	"flag"
	"log"
	"os"

	"github.com/ironsheep/image-builder-mcp/internal/app"
	"github.com/ironsheep/image-builder-mcp/internal/httpapi"
)

var (
	addr       = flag.String("addr", ":9999", "listen address")
	configPath = flag.String("config", "", "config file (default from IMAGE_BUILDER_CONFIG or config.yml)")
	allowFile  = flag.Bool("allow-file", false, "allow file:// image URLs")
	quiet      = flag.Bool("quiet", false, "disable the request log")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	a, err := app.Load(*configPath, app.Options{AllowFile: *allowFile})
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	opts := httpapi.Options{
		Builder:  a.Builder,
		Store:    a.Store,
		Reloader: a.Reloader,
	}
	if !*quiet {
		opts.AccessLog = os.Stderr
	}

	e := httpapi.New(opts)
	log.Printf("image-builder-http: listening on %s with %d palette entries", *addr, a.Store.Load().Len())
	log.Fatal(e.Start(*addr))
}
