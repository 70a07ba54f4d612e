package main

import (
	"os"

	"github.com/FedericoStra/pdfshrink/internal/interface/controllers"
)

// version подставляется при сборке через -ldflags
var version = "dev"

func main() {
	app := NewApp()
	controller := controllers.NewCLIController(version, app.Run)

	if err := controller.Execute(); err != nil {
		os.Exit(1)
	}
}
