// Package adminapi provides a client for the ZeroKit tenant administration API.
//
// Every administrative call must be authenticated with the tenant admin key,
// a 32-byte secret shared between the tenant and the ZeroKit service. The
// client signs each outgoing request with HMAC-SHA256 over a canonical
// representation of the request and places the signature in the Authorization
// header using the AdminKey scheme.
//
// Canonical String:
//
// The signature covers the request method, the relative URL and five
// administrative headers, joined with newlines:
//
//	{METHOD}\n
//	{PATH_AND_QUERY}\n
//	UserId:{admin user id}\n
//	TresoritDate:{ISO-8601 UTC timestamp}\n
//	Content-SHA256:{hex digest of the body}\n
//	Content-Type:{media type}\n
//	HMACHeaders:UserId,TresoritDate,Content-SHA256,Content-Type,HMACHeaders
//
// PATH_AND_QUERY is the relative URL without its leading slash. The header
// lines always appear in the order shown, regardless of the order headers
// were added in.
//
// Usage:
//
//	client, err := adminapi.NewClient(serviceURL, adminKey)
//	if err != nil {
//		return err
//	}
//	resp, err := client.NewRequest(http.MethodPost, "/api/v4/admin/user/init-user-registration").
//		Send(ctx)
//
// Thread Safety:
//
// A Client is immutable after construction and safe for concurrent use.
// A Request accumulates state and must be confined to a single goroutine;
// build a fresh Request per call.
package adminapi
