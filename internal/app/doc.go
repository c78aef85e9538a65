// Package app wires the tourismfx HTTP service together and manages its
// lifecycle.
//
// # Initialization Flow
//
//	1. Load configuration from defaults, config.yaml, .env and TOURISM_* variables
//	2. Initialize logging and OpenTelemetry
//	3. Create the dataset loader over the clean directory
//	4. Initialize services with their dependencies
//	5. Set up HTTP handlers and middleware
//	6. Configure the HTTP server
//
// # Usage
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := application.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Graceful Shutdown
//
// Run blocks until SIGINT or SIGTERM, then drains active requests within
// Server.ShutdownTimeout and flushes the telemetry providers.
package app
