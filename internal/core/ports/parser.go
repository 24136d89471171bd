package ports

import (
	"context"

	"github.com/mutinywallet/mutinyd/internal/core/domain"
)

// ParamsParser classifies a free form string for the given network.
type ParamsParser interface {
	ParseParams(
		ctx context.Context, str string, network domain.Network,
	) (domain.ParsedParams, error)
}
