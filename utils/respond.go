// utils/respond.go
package utils

import (
	"crypto/rand"
	"log"
	"math/big"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RespondWithError writes the shared error envelope. Internal errors are
// logged server-side, the caller only sees the message.
func RespondWithError(c *gin.Context, code int, message string) {
	if code >= http.StatusInternalServerError {
		log.Printf("[ERROR] %s %s | %d | %s", c.Request.Method, c.Request.URL.Path, code, message)
	}
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

const referenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateRandomString returns n random characters from an unambiguous
// alphabet, used for payment reference numbers.
func GenerateRandomString(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(referenceAlphabet)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("failed to read random bytes")
		}
		b[i] = referenceAlphabet[idx.Int64()]
	}
	return string(b)
}
