package metrics

import "go.uber.org/fx"

// Module provides the prometheus collectors.
var Module = fx.Provide(New)
