package client

import "net/http"

// credentialTransport decorates a RoundTripper with the per-site headers
// and the X-Api-Key credential so every request the client sends carries
// them, redirect hops included.
type credentialTransport struct {
	next    http.RoundTripper
	apiKey  string
	headers map[string]string
}

// RoundTrip implements http.RoundTripper. The incoming request is never
// mutated; headers go onto a clone. Site headers land first, and the
// X-Api-Key from configuration overrides a site header of the same name.
func (t *credentialTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())

	for name, value := range t.headers {
		out.Header.Set(name, value)
	}
	if t.apiKey != "" {
		out.Header.Set("X-Api-Key", t.apiKey)
	}

	return t.next.RoundTrip(out)
}
