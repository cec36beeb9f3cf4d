package rest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/0xkalvin/real-estate-hyperledger-kubernetes/contract"
)

var invocations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "gateway_contract_invocations_total",
	Help: "Contract invocations routed through the gateway, by operation and outcome.",
}, []string{"operation", "outcome"})

func observeInvocation(operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = string(contract.ParseCode(err.Error()))
	}
	invocations.WithLabelValues(operation, outcome).Inc()
}
