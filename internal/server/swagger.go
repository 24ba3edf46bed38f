package server

//go:generate swag init -g internal/server/swagger.go -o docs/swagger

// @title Veriscan API
// @version 0.1
// @description Interactive documentation for the Veriscan detection API surface.
// @contact.name Veriscan Maintainers
// @contact.url https://github.com/calder-r/veriscan
// @BasePath /
