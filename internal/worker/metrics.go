package worker

import "github.com/prometheus/client_golang/prometheus"

var (
	BattlesResolved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "battles_resolved_total",
			Help: "Battles settled by the resolver worker",
		},
	)
	SupplyBurns = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "supply_burns_total",
			Help: "Daily supply burns executed",
		},
	)
	RealmPrice = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "realm_price",
			Help: "Current synthetic REALM/USDT price",
		},
	)
)

func init() {
	prometheus.MustRegister(BattlesResolved)
	prometheus.MustRegister(SupplyBurns)
	prometheus.MustRegister(RealmPrice)
}
