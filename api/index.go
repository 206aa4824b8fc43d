package handler

import (
	"net/http"
	"os"
	"sync"

	"tickoff/config"
	"tickoff/di"
	"tickoff/shared/logger"
	"tickoff/shared/timezone"
)

var app = sync.OnceValue(func() http.Handler {
	cfg := config.Get()

	logger.InitLogger()
	logger.SetOutput(cfg, os.Stdout)
	logger.SetLogLevel(cfg)
	timezone.Load(cfg.App.Timezone)

	return di.InitializeService().Handler()
})

// Handler is the serverless entrypoint. The dependency graph is built on the
// first request and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	app().ServeHTTP(w, r)
}
