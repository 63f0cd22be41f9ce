package adminapi

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"time"
)

// Administrative header names. The service matches them case-sensitively,
// so the transport must emit them exactly as spelled here.
const (
	HeaderUserID        = "UserId"
	HeaderTresoritDate  = "TresoritDate"
	HeaderContentSHA256 = "Content-SHA256"
	HeaderContentType   = "Content-Type"
	HeaderContentLength = "Content-Length"
	HeaderHMACHeaders   = "HMACHeaders"
	HeaderAuthorization = "Authorization"
)

// authorizationScheme prefixes the base64 signature in Authorization.
const authorizationScheme = "AdminKey "

const contentTypeJSON = "application/json"

// signedHeaderNames lists the headers covered by the signature, in the
// exact order their lines appear in the canonical string. The HMACHeaders
// header itself carries this list, comma-joined.
var signedHeaderNames = []string{
	HeaderUserID,
	HeaderTresoritDate,
	HeaderContentSHA256,
	HeaderContentType,
	HeaderHMACHeaders,
}

// hexDigest returns the lowercase hex SHA-256 digest of body.
func hexDigest(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// Sign stamps the administrative headers and computes the request
// signature into Authorization. Send runs it automatically; calling it
// again re-signs with a fresh timestamp.
//
// Signing overwrites UserId, TresoritDate, Content-SHA256, HMACHeaders and
// Authorization, refreshes Content-Length from the body, and defaults
// Content-Type to application/json when the caller set none. Each signed
// header must hold exactly one value; a multi-valued Content-Type is
// rejected rather than signed ambiguously.
func (r *Request) Sign() error {
	if r.err != nil {
		return r.err
	}

	r.headers.set(HeaderUserID, r.client.adminUserID)
	r.refreshContentHeaders()
	r.headers.set(HeaderTresoritDate, r.client.now().UTC().Format(time.RFC3339))
	if !r.headers.has(HeaderContentType) {
		r.headers.set(HeaderContentType, contentTypeJSON)
	}
	r.headers.set(HeaderHMACHeaders, strings.Join(signedHeaderNames, ","))

	lines := make([]string, 0, len(signedHeaderNames))
	for _, name := range signedHeaderNames {
		if n := r.headers.count(name); n != 1 {
			return invalidArgf("signed header %s must hold exactly one value, has %d", name, n)
		}
		v, _ := r.headers.get(name)
		lines = append(lines, name+":"+v)
	}

	sig, err := computeSignature(r.client.adminKey, canonicalString(r.method, r.RelativeURL(), lines))
	if err != nil {
		return err
	}
	r.headers.set(HeaderAuthorization, authorizationScheme+sig)
	return nil
}

// canonicalString builds the string-to-sign: the method, the relative URL
// with any leading slash stripped, and the signed header lines, all
// newline-joined.
func canonicalString(method, relativeURL string, headerLines []string) string {
	var b strings.Builder
	b.WriteString(method)
	b.WriteByte('\n')
	b.WriteString(strings.TrimPrefix(relativeURL, "/"))
	b.WriteByte('\n')
	b.WriteString(strings.Join(headerLines, "\n"))
	return b.String()
}

// computeSignature MACs the canonical string with HMAC-SHA256 under the
// admin key and encodes the result with standard base64.
func computeSignature(key []byte, canonical string) (string, error) {
	if len(key) != adminKeyBytes {
		return "", ErrInvalidKey
	}
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(canonical))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}
