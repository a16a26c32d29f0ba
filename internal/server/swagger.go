package server

//go:generate swag init -g internal/server/server.go -o docs/swagger

// @title VeriCura API
// @version 0.1
// @description Health page credibility checks: scan, deep analysis and in-page highlighting.
// @contact.name VeriCura Maintainers
// @contact.url https://github.com/karandeol-26/VeriCura
// @BasePath /
