// Georec - Multi-Region Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/georec

/*
Package supervisor provides process supervision for Georec using suture v4.

Every long-running component of a region runs as a suture.Service in a
three-layer tree:

	RootSupervisor ("georec")
	├── DataSupervisor ("data-layer")
	│   └── CacheJanitorService
	├── ModelSupervisor ("model-layer")
	│   └── ModelService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's failure counting and backoff.
Each layer counts failures on its own, so a model refresh loop that keeps
failing backs off without affecting the HTTP server.

Supervisor events are logged through sutureslog. Callers pass a *slog.Logger,
usually logging.NewSlogLogger so events land in the zerolog stream:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(logger), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewCacheJanitorService(respCache, time.Minute, logger))
	tree.AddModelService(services.NewModelService(engine, modelCfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second, logger))
	return tree.Serve(ctx)

Return values of Serve determine restart behavior: nil stops the service for
good, an error triggers a restart, and ctx.Err() is a normal shutdown.

If a service ignores cancellation, UnstoppedServiceReport lists it after the
shutdown timeout.
*/
package supervisor
