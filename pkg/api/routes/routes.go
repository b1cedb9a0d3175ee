// Package routes contains the HTTP handlers for the core web API.
package routes

import (
	"github.com/gofetch/gofetch/pkg/railclient"
	"github.com/gofetch/gofetch/pkg/routing"
	"github.com/gofetch/gofetch/pkg/runtimestate"
)

// Shared clients, assigned once at server startup. RoutingClient may be nil
// when no mapping provider key is configured.
var RailClient *railclient.Client
var RoutingClient *routing.Client
var RuntimeStore runtimestate.Store
