// Command demoserver serves sample health articles for trying VeriCura
// end to end. Pages can be switched between versions to show a score
// changing between two scans.
// Usage: go run ./cmd/demoserver [port]
// Default port: 9999
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/karandeol-26/VeriCura/internal/demoserver"
	"github.com/karandeol-26/VeriCura/internal/logging"
)

func main() {
	cfg := demoserver.DefaultConfig()

	// Optional: custom port from command line
	if len(os.Args) > 1 {
		port, err := strconv.Atoi(os.Args[1])
		if err != nil || port < 1 || port > 65535 {
			log.Fatalf("Invalid port: %s", os.Args[1])
		}
		cfg.Port = port
	}

	fmt.Println("===========================================")
	fmt.Println("   VeriCura Demo Site")
	fmt.Println("===========================================")
	fmt.Println()
	fmt.Println("Sample pages:")
	for _, p := range demoserver.GetAllPages() {
		fmt.Printf("  %-24s %s\n", p.Path, p.Description)
	}
	fmt.Println()

	server, err := demoserver.NewDemoServer(cfg, logging.NewStdoutLogger("demoserver"))
	if err != nil {
		log.Fatalf("Server error: %v", err)
	}
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
