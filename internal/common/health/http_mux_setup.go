package health

import (
	"net/http"
)

const HealthPath = "/health"

func SetupHttpMux(mux *http.ServeMux, checker Checker) {
	mux.Handle(HealthPath, NewHealthCheckHttpHandler(checker))
}
