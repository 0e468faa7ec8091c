package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/staffloom/attendance-backend-go/internal/domain/attendance"
	"github.com/staffloom/attendance-backend-go/internal/handler/http/response"
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, "Missing token")
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.Unauthorized(w, "Invalid token")
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.Unauthorized(w, "Invalid token")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// PrincipalFromRequest builds the authorization context from the verified
// token claims. Returns false when the claims are missing or malformed;
// AuthRequired runs first, so that means a token issued without the
// attendance claims.
func PrincipalFromRequest(r *http.Request) (attendance.Principal, bool) {
	token, _, err := jwtauth.FromContext(r.Context())
	if err != nil || token == nil {
		return attendance.Principal{}, false
	}

	claims, err := token.AsMap(r.Context())
	if err != nil {
		return attendance.Principal{}, false
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return attendance.Principal{}, false
	}

	principal := attendance.Principal{UserID: userID}
	if raw, ok := claims["location_ids"].([]interface{}); ok {
		for _, v := range raw {
			if id, ok := v.(string); ok {
				principal.LocationIDs = append(principal.LocationIDs, id)
			}
		}
	}
	return principal, true
}
