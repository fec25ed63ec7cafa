// Package fetch is a configuration and behavior layer around resty.
//
// It gives application code a consistent request interface with:
//   - Per-request token injection via a caller-supplied accessor
//   - An instance-scoped header table partitioned by verb scope
//   - Multipart-form encoding of nested data (see the form package)
//   - Precision-safe numeric decoding: large integers surface as
//     json.Number rather than a rounded float
//   - Interception of configured body codes as call failures
//
// Transport, connection pooling, retries, redirects, and TLS are the
// wrapped client's responsibility; construction options only pass
// configuration through.
//
// Example Usage:
//
//	client, err := fetch.New(
//		fetch.WithBaseURL("https://api.example.com"),
//		fetch.WithTokenSource(tokens.Current),
//		fetch.WithErrorCodes(4001, 4002),
//	)
//	if err != nil {
//		return err
//	}
//	resp, err := client.Get(ctx, "/users", map[string]any{"page": 1})
package fetch
