package handler

import (
	"net/http"
	"sync"

	"hotelops/config"
	"hotelops/di"
	"hotelops/shared/logger"
)

var (
	app     http.Handler
	appOnce sync.Once
)

// Handler is the serverless entrypoint. The service graph is built once per instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	appOnce.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)

		logger.SetLogLevel(cfg)

		app = di.InitializeService().Handler()
	})

	r.RequestURI = r.URL.String()

	app.ServeHTTP(w, r)
}
