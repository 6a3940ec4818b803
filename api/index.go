package handler

import (
	"net/http"
	"sync"

	"frontdesk/config"
	"frontdesk/di"
	"frontdesk/shared/logger"
)

var (
	once    sync.Once
	handler http.Handler
)

// Handler is the serverless entry point. The dependency graph is built on
// the first request and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)
		logger.SetLogLevel(cfg)

		handler = di.InitializeService().Handler()
	})

	r.RequestURI = r.URL.String()

	handler.ServeHTTP(w, r)
}
