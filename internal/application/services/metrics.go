package services

import "github.com/prometheus/client_golang/prometheus"

var listingCacheLookups = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "listing_cache_lookups_total",
		Help: "Appointment listing cache lookups by result",
	},
	[]string{"result"},
)

func init() {
	prometheus.MustRegister(listingCacheLookups)
}
