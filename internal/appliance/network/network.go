// Package network holds the appliance's network configuration models.
package network

// GlobalConfiguration names the appliance on the network.
type GlobalConfiguration struct {
	ID       int64
	Hostname string
	Domain   string
}
