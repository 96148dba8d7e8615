package middlewares

import (
	"net/http"
	"strings"

	"github.com/Luismorlan/chirper/auth"
	"github.com/Luismorlan/chirper/utils/flag"
	"github.com/gin-gonic/gin"
)

// JWT middleware fetches the caller's access token, looking first for
// the "token" query parameter and then for a bearer Authorization
// header. It parses the token and adds a "sub" header storing the
// user's id for downstream handlers. It aborts with 401 on token not
// provided or token is invalid (wrong token or expired).
func JWT(provider *auth.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		if flag.ByPassAuth {
			c.Next()
			return
		}

		token := c.Query("token")
		if token == "" {
			header := c.GetHeader("Authorization")
			token = strings.TrimPrefix(header, "Bearer ")
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "empty jwt token",
			})
			c.Abort()
			return
		}

		claims, err := provider.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": err.Error(),
			})
			c.Abort()
			return
		}

		// Successfully validated the jwt token, expose the subject (user
		// id) to downstream handlers.
		c.Request.Header.Del("token")
		c.Request.Header.Set("sub", claims.Subject)
		c.Next()
	}
}
