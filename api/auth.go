package api

import (
	"net/http"

	"github.com/quoteflow/quoteflow/app"
	"github.com/quoteflow/quoteflow/core/schema"
)

func loginSchema() schema.Request {
	return schema.Request{Body: schema.Object(map[string]schema.FieldRule{
		"username": schema.Code(),
		"password": schema.Text(),
	})}
}

// loginHandler serves POST /auth/login. It is the only unauthenticated
// mutation in the API.
func loginHandler(svc *app.AuthService, rp responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := PartsFrom(r.Context())
		result, err := svc.Login(r.Context(), str(parts.Body, "username"), str(parts.Body, "password"))
		if err != nil {
			rp.err(w, r, err)
			return
		}
		rp.data(w, http.StatusOK, map[string]any{
			"token":       result.Token,
			"expires_at":  stamp(result.ExpiresAt),
			"user":        renderUser(result.User),
			"roles":       result.Roles,
			"permissions": result.Permissions,
		})
	}
}
