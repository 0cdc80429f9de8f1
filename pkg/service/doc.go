// Package service serves outline rendering over HTTP.
//
// Routes:
//
//	POST /render   render the outline in the request body
//	GET  /healthz  liveness probe
//	GET  /metrics  Prometheus exposition (when metrics are enabled)
//
// The render endpoint accepts YAML or JSON outlines. Query parameters
// dialect and newlines override the outline's own settings. A rendered
// document is returned with a content type matching its dialect. Bad input
// gets a 400 with a JSON diagnostic:
//
//	{"code":"M002","category":"outline","message":"Invalid outline structure",
//	 "detail":"unknown field \"colour\"","location":{"file":"request","line":4,"column":5}}
//
// Usage:
//
//	srv := service.New(&service.Config{Addr: ":8080"})
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package service
