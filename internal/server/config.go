package server

import (
	"github.com/karandeol-26/VeriCura/internal/app"
	"github.com/karandeol-26/VeriCura/internal/logging"
)

type Config struct {
	// ListenAddr is the HTTP listen address. Empty means the application's
	// configured ServerAddr.
	ListenAddr string

	// App supplies the orchestrator and components. Required.
	App *app.Application

	// Logger defaults to a stdout logger named "Server".
	Logger logging.Logger
}
