// Package chainnetwork normalizes legacy Cardano network names. Both the
// CRD reconciler (deciding whether a worker belongs to this pod's shard)
// and the edge proxy (computing the upstream shard host) need the same
// mapping, so it lives here instead of being duplicated.
package chainnetwork

var legacy = map[string]string{
	"mainnet": "cardano-mainnet",
	"preprod": "cardano-preprod",
	"preview": "cardano-preview",
}

// Normalize maps a legacy short network name to its canonical form.
// Unknown names pass through unchanged, and Normalize is idempotent:
// Normalize(Normalize(n)) == Normalize(n).
func Normalize(network string) string {
	if canonical, ok := legacy[network]; ok {
		return canonical
	}
	return network
}
