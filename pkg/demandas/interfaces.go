package demandas

import (
	dashboard "github.com/goliatone/go-painel/components/dashboard"
)

// BadgeClient fetches pending-work counters for badge-capable cards.
type BadgeClient interface {
	dashboard.BadgeSource
}

// OriginClient fetches the demandas-per-origin breakdown for the origin chart.
type OriginClient interface {
	dashboard.OriginRepository
}

// DemandClient fetches demandas in progress for the viewer's department.
type DemandClient interface {
	dashboard.DemandFeed
}

// Client is a convenience union for services that implement all demandas calls.
type Client interface {
	BadgeClient
	OriginClient
	DemandClient
}
