package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// HealthOutput is the liveness payload.
type HealthOutput struct {
	Body struct {
		OK bool `json:"ok"`
	}
}

// NewHealthHandler registers the liveness route. It reports success
// unconditionally; upstream reachability is deliberately not probed.
func NewHealthHandler(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "healthz",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Liveness check",
		Tags:        []string{"ops"},
	}, func(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
		out := &HealthOutput{}
		out.Body.OK = true
		return out, nil
	})
}
