package http

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
)

const signatureHeader = "X-Twilio-Signature"

// signatureMiddleware rejects webhook calls whose signature does not match the
// configured auth token. publicURL must be the exact URL the provider calls.
func signatureMiddleware(authToken, publicURL string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := c.Request.ParseForm(); err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "malformed form body", err))
			return
		}
		expected := computeSignature(authToken, publicURL, c.Request.PostForm)
		given := c.GetHeader(signatureHeader)
		if given == "" || !hmac.Equal([]byte(expected), []byte(given)) {
			logger.Warn("webhook signature mismatch", "path", c.Request.URL.Path)
			abortWithError(c, NewHTTPError(http.StatusForbidden, "invalid_signature", "request signature does not match", nil))
			return
		}
		c.Next()
	}
}

// computeSignature is base64(HMAC-SHA1(token, url + sorted key/value pairs)).
func computeSignature(authToken, publicURL string, form url.Values) string {
	keys := make([]string, 0, len(form))
	for k := range form {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(publicURL)
	for _, k := range keys {
		values := append([]string(nil), form[k]...)
		sort.Strings(values)
		for _, v := range values {
			sb.WriteString(k)
			sb.WriteString(v)
		}
	}

	mac := hmac.New(sha1.New, []byte(authToken))
	mac.Write([]byte(sb.String()))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
