package hostname

import "fmt"

// Build returns (endpointHost, authenticatedHost) for a worker whose auth
// token is authToken, under extensionDomain: the first is the bare
// extension domain, the second namespaces the token as a subdomain.
func Build(extensionDomain, authToken string) (string, string) {
	return extensionDomain, fmt.Sprintf("%s.%s", authToken, extensionDomain)
}
